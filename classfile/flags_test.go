package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassAccessFlags(t *testing.T) {
	flags, err := ClassAccessFlagsFromBits(0x0021)
	require.NoError(t, err)
	assert.True(t, flags.IsPublic())
	assert.True(t, flags.IsSuper())
	assert.False(t, flags.IsInterface())
	assert.Equal(t, "public super", flags.String())

	// 0x0002 is private, which exists for fields and methods but not
	// classes.
	_, err = ClassAccessFlagsFromBits(0x0002)
	var dataErr *InvalidClassDataError
	assert.ErrorAs(t, err, &dataErr)
}

func TestFieldAccessFlags(t *testing.T) {
	flags, err := FieldAccessFlagsFromBits(0x0019)
	require.NoError(t, err)
	assert.True(t, flags.IsPublic())
	assert.True(t, flags.IsStatic())
	assert.True(t, flags.IsFinal())
	assert.Equal(t, "public static final", flags.String())

	// native is a method flag only
	_, err = FieldAccessFlagsFromBits(0x0100)
	var dataErr *InvalidClassDataError
	assert.ErrorAs(t, err, &dataErr)
}

func TestMethodAccessFlags(t *testing.T) {
	flags, err := MethodAccessFlagsFromBits(0x0009)
	require.NoError(t, err)
	assert.True(t, flags.IsPublic())
	assert.True(t, flags.IsStatic())

	// interface and module bits never appear on methods
	for _, bits := range []uint16{0x0200, 0x8000} {
		_, err = MethodAccessFlagsFromBits(bits)
		var dataErr *InvalidClassDataError
		assert.ErrorAs(t, err, &dataErr, "bits 0x%04X", bits)
	}
}

func TestSharedBitPositions(t *testing.T) {
	// 0x0040 means volatile on fields and bridge on methods; both must
	// validate in their own context.
	fieldFlags, err := FieldAccessFlagsFromBits(0x0040)
	require.NoError(t, err)
	assert.True(t, fieldFlags.IsVolatile())

	methodFlags, err := MethodAccessFlagsFromBits(0x0040)
	require.NoError(t, err)
	assert.True(t, methodFlags.IsBridge())
}
