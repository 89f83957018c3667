package classfile

import (
	"encoding/binary"
	"math"
)

// Buffer is a sequential big-endian reader over an immutable byte slice.
// Every successful read advances the position by exactly the consumed
// width; reads past the end fail with ErrUnexpectedEndOfData and callers
// are expected to abort rather than retry.
type Buffer struct {
	data []byte
	pos  int
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Position returns the number of bytes consumed so far.
func (b *Buffer) Position() int { return b.pos }

// Remaining returns the number of bytes left to read.
func (b *Buffer) Remaining() int { return len(b.data) - b.pos }

func (b *Buffer) take(n int) ([]byte, error) {
	if b.Remaining() < n {
		return nil, ErrUnexpectedEndOfData
	}
	chunk := b.data[b.pos : b.pos+n]
	b.pos += n
	return chunk, nil
}

func (b *Buffer) ReadU8() (uint8, error) {
	chunk, err := b.take(1)
	if err != nil {
		return 0, err
	}
	return chunk[0], nil
}

func (b *Buffer) ReadU16() (uint16, error) {
	chunk, err := b.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(chunk), nil
}

func (b *Buffer) ReadU32() (uint32, error) {
	chunk, err := b.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(chunk), nil
}

func (b *Buffer) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

func (b *Buffer) ReadI64() (int64, error) {
	chunk, err := b.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(chunk)), nil
}

func (b *Buffer) ReadF32() (float32, error) {
	v, err := b.ReadU32()
	return math.Float32frombits(v), err
}

func (b *Buffer) ReadF64() (float64, error) {
	chunk, err := b.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(chunk)), nil
}

// ReadBytes returns the next n bytes verbatim. The returned slice aliases
// the underlying buffer and must not be modified.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	return b.take(n)
}

// ReadModifiedUTF8 consumes exactly n bytes and decodes them as the JVM's
// modified UTF-8 encoding: U+0000 and all code points up to U+FFFF use the
// CESU-8 1/2/3-byte forms, and supplementary code points appear as a
// 6-byte surrogate pair. Malformed sequences fail with
// ErrInvalidTextEncoding.
func (b *Buffer) ReadModifiedUTF8(n int) (string, error) {
	chunk, err := b.take(n)
	if err != nil {
		return "", err
	}
	return decodeModifiedUTF8(chunk)
}

func decodeModifiedUTF8(data []byte) (string, error) {
	runes := make([]rune, 0, len(data))
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == 0x00 || c >= 0xF0:
			// The format forbids the byte 0 and the range 0xf0-0xff.
			return "", ErrInvalidTextEncoding
		case c < 0x80:
			runes = append(runes, rune(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(data) || data[i+1]&0xC0 != 0x80 {
				return "", ErrInvalidTextEncoding
			}
			runes = append(runes, rune(c&0x1F)<<6|rune(data[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(data) || data[i+1]&0xC0 != 0x80 || data[i+2]&0xC0 != 0x80 {
				return "", ErrInvalidTextEncoding
			}
			r := rune(c&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
			i += 3
			switch {
			case r >= 0xDC00 && r <= 0xDFFF:
				// A low surrogate is only legal directly after a high one.
				return "", ErrInvalidTextEncoding
			case r >= 0xD800 && r <= 0xDBFF:
				// A high surrogate must be completed by a low-surrogate
				// triple; anything else would decode to U+FFFD, not fail.
				if i+2 >= len(data) || data[i] != 0xED ||
					data[i+1]&0xC0 != 0x80 || data[i+2]&0xC0 != 0x80 {
					return "", ErrInvalidTextEncoding
				}
				low := rune(data[i]&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
				if low < 0xDC00 || low > 0xDFFF {
					return "", ErrInvalidTextEncoding
				}
				r = 0x10000 + (r-0xD800)<<10 + (low - 0xDC00)
				i += 3
			}
			runes = append(runes, r)
		default:
			return "", ErrInvalidTextEncoding
		}
	}
	return string(runes), nil
}
