package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassFileVersion(t *testing.T) {
	v, err := NewClassFileVersion(52, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(52), v.Major)
	assert.Equal(t, "8", v.JavaRelease())

	v, err = NewClassFileVersion(45, 3)
	require.NoError(t, err)
	assert.Equal(t, "1.1", v.JavaRelease())

	v, err = NewClassFileVersion(65, 0)
	require.NoError(t, err)
	assert.Equal(t, "21", v.JavaRelease())
}

func TestNewClassFileVersionRejectsUnknownMajors(t *testing.T) {
	for _, major := range []uint16{0, 44, 66, 1000} {
		_, err := NewClassFileVersion(major, 7)
		var versionErr *UnsupportedVersionError
		require.ErrorAs(t, err, &versionErr, "major %d", major)
		assert.Equal(t, major, versionErr.Major)
		assert.Equal(t, uint16(7), versionErr.Minor)
	}
}

func TestClassFileVersionString(t *testing.T) {
	v := ClassFileVersion{Major: 55, Minor: 0}
	assert.Equal(t, "55.0 (Java 11)", v.String())
}
