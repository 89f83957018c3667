package classfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferReads(t *testing.T) {
	buf := NewBuffer([]byte{
		0x01,
		0x12, 0x34,
		0xCA, 0xFE, 0xBA, 0xBE,
		0xFF, 0xFF, 0xFF, 0xFE, // -2 as i32
		0x3F, 0x80, 0x00, 0x00, // 1.0 as f32
	})

	v8, err := buf.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), v8)

	v16, err := buf.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v16)

	v32, err := buf.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), v32)

	i32, err := buf.ReadI32()
	require.NoError(t, err)
	assert.Equal(t, int32(-2), i32)

	f32, err := buf.ReadF32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), f32)

	assert.Equal(t, 0, buf.Remaining())
	assert.Equal(t, 16, buf.Position())
}

func TestBufferWideReads(t *testing.T) {
	buf := NewBuffer([]byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7B, // 123 as i64
		0x40, 0x0C, 0x7A, 0xE1, 0x47, 0xAE, 0x14, 0x7B, // 3.56 as f64
	})

	i64, err := buf.ReadI64()
	require.NoError(t, err)
	assert.Equal(t, int64(123), i64)

	f64, err := buf.ReadF64()
	require.NoError(t, err)
	assert.InDelta(t, 3.56, f64, 1e-12)
}

func TestBufferEndOfData(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*Buffer) error
	}{
		{"u8 on empty", nil, func(b *Buffer) error { _, err := b.ReadU8(); return err }},
		{"u16 with one byte", []byte{0x01}, func(b *Buffer) error { _, err := b.ReadU16(); return err }},
		{"u32 with three bytes", []byte{1, 2, 3}, func(b *Buffer) error { _, err := b.ReadU32(); return err }},
		{"i64 with four bytes", []byte{1, 2, 3, 4}, func(b *Buffer) error { _, err := b.ReadI64(); return err }},
		{"bytes past end", []byte{1, 2}, func(b *Buffer) error { _, err := b.ReadBytes(3); return err }},
		{"utf8 past end", []byte{'a'}, func(b *Buffer) error { _, err := b.ReadModifiedUTF8(2); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewBuffer(tt.data))
			assert.ErrorIs(t, err, ErrUnexpectedEndOfData)
		})
	}
}

func TestReadModifiedUTF8(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"ascii", []byte("hello"), "hello"},
		{"two byte", []byte{0xC3, 0xA9}, "é"},
		{"encoded nul", []byte{0xC0, 0x80}, "\x00"},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, "€"},
		{"surrogate pair", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "\U0001F600"},
		{"mixed", append([]byte("a"), 0xC3, 0xA9, 'z'), "aéz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer(tt.data)
			got, err := buf.ReadModifiedUTF8(len(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadModifiedUTF8Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"raw nul byte", []byte{0x00}},
		{"0xf0 lead byte", []byte{0xF0, 0x90, 0x80, 0x80}},
		{"0xff byte", []byte{0xFF}},
		{"truncated two byte", []byte{0xC3}},
		{"truncated three byte", []byte{0xE2, 0x82}},
		{"bad continuation", []byte{0xC3, 0x41}},
		{"unpaired high surrogate at end", []byte{0xED, 0xA0, 0x80}},
		{"high surrogate before ascii", []byte{0xED, 0xA0, 0x80, 'a', 'b', 'c'}},
		{"high surrogate before non-surrogate triple", []byte{0xED, 0xA0, 0x80, 0xE2, 0x82, 0xAC}},
		{"two high surrogates", []byte{0xED, 0xA0, 0x80, 0xED, 0xA0, 0x80}},
		{"stray low surrogate", []byte{0xED, 0xB0, 0x80}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer(tt.data)
			_, err := buf.ReadModifiedUTF8(len(tt.data))
			assert.ErrorIs(t, err, ErrInvalidTextEncoding)
		})
	}
}
