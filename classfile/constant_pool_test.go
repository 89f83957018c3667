package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstantPool(t *testing.T) {
	cp := NewConstantPool()
	cp.Add(&ConstantUtf8Info{Value: "hey"})
	cp.Add(&ConstantIntegerInfo{Value: 1})
	cp.Add(&ConstantFloatInfo{Value: 2.1})
	cp.Add(&ConstantLongInfo{Value: 123})
	cp.Add(&ConstantDoubleInfo{Value: 3.56})
	cp.Add(&ConstantClassInfo{NameIndex: 1})
	cp.Add(&ConstantStringInfo{StringIndex: 1})
	cp.Add(&ConstantUtf8Info{Value: "joe"})
	cp.Add(&ConstantFieldrefInfo{ClassIndex: 1, NameAndTypeIndex: 10})
	cp.Add(&ConstantMethodrefInfo{ClassIndex: 1, NameAndTypeIndex: 10})
	cp.Add(&ConstantInterfaceMethodrefInfo{ClassIndex: 1, NameAndTypeIndex: 10})
	cp.Add(&ConstantNameAndTypeInfo{NameIndex: 1, DescriptorIndex: 10})

	// Long and Double each consume a second, dead slot.
	assert.Equal(t, 14, cp.Size())

	t.Run("get", func(t *testing.T) {
		entry, err := cp.Get(1)
		require.NoError(t, err)
		assert.Equal(t, &ConstantUtf8Info{Value: "hey"}, entry)

		entry, err = cp.Get(4)
		require.NoError(t, err)
		assert.Equal(t, &ConstantLongInfo{Value: 123}, entry)

		entry, err = cp.Get(6)
		require.NoError(t, err)
		assert.Equal(t, &ConstantDoubleInfo{Value: 3.56}, entry)

		entry, err = cp.Get(8)
		require.NoError(t, err)
		assert.Equal(t, &ConstantClassInfo{NameIndex: 1}, entry)

		entry, err = cp.Get(14)
		require.NoError(t, err)
		assert.Equal(t, &ConstantNameAndTypeInfo{NameIndex: 1, DescriptorIndex: 10}, entry)
	})

	t.Run("invalid indices", func(t *testing.T) {
		for _, index := range []uint16{0, 5, 7, 15, 100} {
			_, err := cp.Get(index)
			var idxErr *InvalidConstantPoolIndexError
			require.ErrorAs(t, err, &idxErr, "index %d", index)
			assert.Equal(t, index, idxErr.Index)
		}
	})

	t.Run("text of", func(t *testing.T) {
		tests := []struct {
			index uint16
			want  string
		}{
			{1, "hey"},
			{2, "1"},
			{3, "2.1"},
			{4, "123"},
			{6, "3.56"},
			{8, "hey"},
			{9, "hey"},
			{10, "joe"},
			{11, "hey.joe"},
			{12, "hey.joe"},
			{13, "hey.joe"},
			{14, "hey: joe"},
		}
		for _, tt := range tests {
			got, err := cp.TextOf(tt.index)
			require.NoError(t, err, "index %d", tt.index)
			assert.Equal(t, tt.want, got, "index %d", tt.index)
		}
	})

	t.Run("text of tombstone", func(t *testing.T) {
		for _, index := range []uint16{5, 7} {
			_, err := cp.TextOf(index)
			var idxErr *InvalidConstantPoolIndexError
			assert.ErrorAs(t, err, &idxErr, "index %d", index)
		}
	})
}

func TestConstantPoolEmptyPool(t *testing.T) {
	cp := NewConstantPool()
	_, err := cp.Get(0)
	var idxErr *InvalidConstantPoolIndexError
	assert.ErrorAs(t, err, &idxErr)
	_, err = cp.Get(1)
	assert.ErrorAs(t, err, &idxErr)
}

func TestConstantPoolMethodHandleText(t *testing.T) {
	cp := NewConstantPool()
	cp.Add(&ConstantUtf8Info{Value: "Foo"})                           // 1
	cp.Add(&ConstantClassInfo{NameIndex: 1})                          // 2
	cp.Add(&ConstantUtf8Info{Value: "bar"})                           // 3
	cp.Add(&ConstantUtf8Info{Value: "()V"})                           // 4
	cp.Add(&ConstantNameAndTypeInfo{NameIndex: 3, DescriptorIndex: 4}) // 5
	cp.Add(&ConstantMethodrefInfo{ClassIndex: 2, NameAndTypeIndex: 5}) // 6
	cp.Add(&ConstantMethodHandleInfo{ReferenceKind: RefInvokeVirtual, ReferenceIndex: 6}) // 7
	cp.Add(&ConstantMethodTypeInfo{DescriptorIndex: 4})               // 8

	text, err := cp.TextOf(7)
	require.NoError(t, err)
	assert.Equal(t, "invokeVirtual(Foo.bar: ()V)", text)

	text, err = cp.TextOf(8)
	require.NoError(t, err)
	assert.Equal(t, "()V", text)
}

func TestConstantPoolBadMethodHandleKind(t *testing.T) {
	cp := NewConstantPool()
	cp.Add(&ConstantUtf8Info{Value: "x"})
	cp.Add(&ConstantMethodHandleInfo{ReferenceKind: 42, ReferenceIndex: 1})

	_, err := cp.TextOf(2)
	var kindErr *InvalidMethodHandleKindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, uint8(42), kindErr.Kind)
}

func TestConstantPoolCyclicReferences(t *testing.T) {
	// A class reference pointing at itself cannot occur in a well-formed
	// file but must not hang resolution.
	cp := NewConstantPool()
	cp.Add(&ConstantClassInfo{NameIndex: 1})

	_, err := cp.TextOf(1)
	assert.ErrorIs(t, err, ErrResolutionDepthExceeded)

	cp2 := NewConstantPool()
	cp2.Add(&ConstantClassInfo{NameIndex: 2}) // 1 -> 2
	cp2.Add(&ConstantStringInfo{StringIndex: 1}) // 2 -> 1
	_, err = cp2.TextOf(1)
	assert.ErrorIs(t, err, ErrResolutionDepthExceeded)
}

func TestConstantPoolDanglingReference(t *testing.T) {
	cp := NewConstantPool()
	cp.Add(&ConstantClassInfo{NameIndex: 99})

	_, err := cp.TextOf(1)
	var idxErr *InvalidConstantPoolIndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, uint16(99), idxErr.Index)
}

func TestConstantPoolDump(t *testing.T) {
	cp := NewConstantPool()
	cp.Add(&ConstantUtf8Info{Value: "hey"}) // 1
	cp.Add(&ConstantClassInfo{NameIndex: 1}) // 2
	cp.Add(&ConstantLongInfo{Value: 7})     // 3 + tombstone at 4

	entry, err := cp.DumpEntry(2)
	require.NoError(t, err)
	assert.Equal(t, `ClassReference: 1 => (String: "hey")`, entry)

	dump := cp.String()
	assert.Contains(t, dump, "Constant pool: (size: 4)")
	assert.Contains(t, dump, `1, String: "hey"`)
	assert.Contains(t, dump, "4, <tombstone>")
}

func TestMethodHandleKindName(t *testing.T) {
	names := map[uint8]string{
		1: "getField",
		2: "getStatic",
		3: "putField",
		4: "putStatic",
		5: "invokeVirtual",
		6: "invokeStatic",
		7: "invokeSpecial",
		8: "newInvokeSpecial",
		9: "invokeInterface",
	}
	for kind, want := range names {
		got, err := MethodHandleKindName(kind)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, kind := range []uint8{0, 10, 255} {
		_, err := MethodHandleKindName(kind)
		var kindErr *InvalidMethodHandleKindError
		require.ErrorAs(t, err, &kindErr)
		assert.Equal(t, kind, kindErr.Kind)
	}
}
