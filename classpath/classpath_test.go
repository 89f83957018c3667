package classpath

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classBytes builds a minimal but valid class file image for the given
// binary class name: no superclass reference, no members.
func classBytes(name string) []byte {
	var buf bytes.Buffer
	u2 := func(v uint16) { _ = binary.Write(&buf, binary.BigEndian, v) }
	u4 := func(v uint32) { _ = binary.Write(&buf, binary.BigEndian, v) }

	u4(0xCAFEBABE)
	u2(0)  // minor
	u2(52) // major
	u2(3)  // constant pool count: two entries
	buf.WriteByte(1)
	u2(uint16(len(name)))
	buf.WriteString(name)
	buf.WriteByte(7)
	u2(1)
	u2(0x0021) // public super
	u2(2)      // this_class
	u2(0)      // super_class
	u2(0)      // interfaces
	u2(0)      // fields
	u2(0)      // methods
	u2(0)      // attributes
	return buf.Bytes()
}

func writeClassFile(t *testing.T, root, name string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name)+".class")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, classBytes(name), 0o644))
}

func writeJar(t *testing.T, path string, names ...string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name + ".class")
		require.NoError(t, err)
		_, err = f.Write(classBytes(name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestDirEntry(t *testing.T) {
	root := t.TempDir()
	writeClassFile(t, root, "com/example/Foo")

	entry := NewDirEntry(root)

	data, err := entry.Resolve("com/example/Foo")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, classBytes("com/example/Foo"), data)

	data, err = entry.Resolve("com/example/Missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestJarEntry(t *testing.T) {
	jarPath := filepath.Join(t.TempDir(), "lib.jar")
	writeJar(t, jarPath, "com/example/Bar")

	entry, err := NewJarEntry(jarPath)
	require.NoError(t, err)

	data, err := entry.Resolve("com/example/Bar")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, classBytes("com/example/Bar"), data)

	data, err = entry.Resolve("com/example/Missing")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestJmodEntry(t *testing.T) {
	dir := t.TempDir()
	jmodPath := filepath.Join(dir, "java.base.jmod")

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("classes/java/lang/Object.class")
	require.NoError(t, err)
	_, err = f.Write(classBytes("java/lang/Object"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// jmod archives carry a four byte header before the zip data.
	data := append([]byte{'J', 'M', 0x01, 0x00}, buf.Bytes()...)
	require.NoError(t, os.WriteFile(jmodPath, data, 0o644))

	entry, err := NewJarEntry(jmodPath)
	require.NoError(t, err)

	resolved, err := entry.Resolve("java/lang/Object")
	require.NoError(t, err)
	require.NotNil(t, resolved)
}

func TestClassPathSearchOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeClassFile(t, second, "com/example/OnlyInSecond")
	writeClassFile(t, first, "com/example/InBoth")
	writeClassFile(t, second, "com/example/InBoth")

	cp := New(NewDirEntry(first), NewDirEntry(second))

	data, err := cp.Resolve("com/example/OnlyInSecond")
	require.NoError(t, err)
	assert.NotNil(t, data)

	// first entry wins; both copies are identical here, so check via a
	// jar that shadows the directory instead
	jarPath := filepath.Join(t.TempDir(), "shadow.jar")
	writeJar(t, jarPath, "com/example/InBoth")
	jar, err := NewJarEntry(jarPath)
	require.NoError(t, err)

	shadowed := New(jar, NewDirEntry(first))
	data, err = shadowed.Resolve("com/example/InBoth")
	require.NoError(t, err)
	assert.NotNil(t, data)

	data, err = cp.Resolve("com/example/Nowhere")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestParseSpec(t *testing.T) {
	dir := t.TempDir()
	writeClassFile(t, dir, "com/example/Foo")
	jarPath := filepath.Join(dir, "lib.jar")
	writeJar(t, jarPath, "com/example/Jarred")

	spec := dir + string(os.PathListSeparator) + jarPath
	cp, err := Parse(spec)
	require.NoError(t, err)

	data, err := cp.Resolve("com/example/Foo")
	require.NoError(t, err)
	assert.NotNil(t, data)

	data, err = cp.Resolve("com/example/Jarred")
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestParseSpecMissingJar(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.jar"))
	assert.Error(t, err)
}

func TestLoadClass(t *testing.T) {
	root := t.TempDir()
	writeClassFile(t, root, "com/example/Foo")

	cp := New(NewDirEntry(root))

	cf, err := cp.LoadClass("com/example/Foo")
	require.NoError(t, err)
	assert.Equal(t, "com/example/Foo", cf.Name)
	assert.Empty(t, cf.Superclass)

	_, err = cp.LoadClass("com/example/Missing")
	assert.ErrorContains(t, err, "not found")
}

func TestLoadClassRejectsCorruptData(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Broken.class")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0x03}, 0o644))

	cp := New(NewDirEntry(root))
	_, err := cp.LoadClass("Broken")
	assert.ErrorContains(t, err, "parsing Broken")
}
