package classfile

import "strings"

// Access flag bit values. Class, field and method contexts share bit
// positions but not meanings, so each context gets its own bitset type
// with its own known-bits mask.
const (
	accPublic       uint16 = 0x0001
	accPrivate      uint16 = 0x0002
	accProtected    uint16 = 0x0004
	accStatic       uint16 = 0x0008
	accFinal        uint16 = 0x0010
	accSuper        uint16 = 0x0020
	accSynchronized uint16 = 0x0020
	accVolatile     uint16 = 0x0040
	accBridge       uint16 = 0x0040
	accTransient    uint16 = 0x0080
	accVarargs      uint16 = 0x0080
	accNative       uint16 = 0x0100
	accInterface    uint16 = 0x0200
	accAbstract     uint16 = 0x0400
	accStrict       uint16 = 0x0800
	accSynthetic    uint16 = 0x1000
	accAnnotation   uint16 = 0x2000
	accEnum         uint16 = 0x4000
	accModule       uint16 = 0x8000
)

type ClassAccessFlags uint16

const classAccessMask = accPublic | accFinal | accSuper | accInterface |
	accAbstract | accSynthetic | accAnnotation | accEnum | accModule

// ClassAccessFlagsFromBits validates a raw flag word against the bits
// defined for the class context. Unknown bits are rejected rather than
// ignored.
func ClassAccessFlagsFromBits(bits uint16) (ClassAccessFlags, error) {
	if bits&^classAccessMask != 0 {
		return 0, invalidClassData("invalid class flags: 0x%04X", bits)
	}
	return ClassAccessFlags(bits), nil
}

func (f ClassAccessFlags) IsPublic() bool     { return uint16(f)&accPublic != 0 }
func (f ClassAccessFlags) IsFinal() bool      { return uint16(f)&accFinal != 0 }
func (f ClassAccessFlags) IsSuper() bool      { return uint16(f)&accSuper != 0 }
func (f ClassAccessFlags) IsInterface() bool  { return uint16(f)&accInterface != 0 }
func (f ClassAccessFlags) IsAbstract() bool   { return uint16(f)&accAbstract != 0 }
func (f ClassAccessFlags) IsSynthetic() bool  { return uint16(f)&accSynthetic != 0 }
func (f ClassAccessFlags) IsAnnotation() bool { return uint16(f)&accAnnotation != 0 }
func (f ClassAccessFlags) IsEnum() bool       { return uint16(f)&accEnum != 0 }
func (f ClassAccessFlags) IsModule() bool     { return uint16(f)&accModule != 0 }

func (f ClassAccessFlags) String() string {
	return flagString(uint16(f), []flagName{
		{accPublic, "public"},
		{accFinal, "final"},
		{accSuper, "super"},
		{accInterface, "interface"},
		{accAbstract, "abstract"},
		{accSynthetic, "synthetic"},
		{accAnnotation, "annotation"},
		{accEnum, "enum"},
		{accModule, "module"},
	})
}

type FieldAccessFlags uint16

const fieldAccessMask = accPublic | accPrivate | accProtected | accStatic |
	accFinal | accVolatile | accTransient | accSynthetic | accEnum

// FieldAccessFlagsFromBits validates a raw flag word against the bits
// defined for the field context.
func FieldAccessFlagsFromBits(bits uint16) (FieldAccessFlags, error) {
	if bits&^fieldAccessMask != 0 {
		return 0, invalidClassData("invalid field flags: 0x%04X", bits)
	}
	return FieldAccessFlags(bits), nil
}

func (f FieldAccessFlags) IsPublic() bool    { return uint16(f)&accPublic != 0 }
func (f FieldAccessFlags) IsPrivate() bool   { return uint16(f)&accPrivate != 0 }
func (f FieldAccessFlags) IsProtected() bool { return uint16(f)&accProtected != 0 }
func (f FieldAccessFlags) IsStatic() bool    { return uint16(f)&accStatic != 0 }
func (f FieldAccessFlags) IsFinal() bool     { return uint16(f)&accFinal != 0 }
func (f FieldAccessFlags) IsVolatile() bool  { return uint16(f)&accVolatile != 0 }
func (f FieldAccessFlags) IsTransient() bool { return uint16(f)&accTransient != 0 }
func (f FieldAccessFlags) IsSynthetic() bool { return uint16(f)&accSynthetic != 0 }
func (f FieldAccessFlags) IsEnum() bool      { return uint16(f)&accEnum != 0 }

func (f FieldAccessFlags) String() string {
	return flagString(uint16(f), []flagName{
		{accPublic, "public"},
		{accPrivate, "private"},
		{accProtected, "protected"},
		{accStatic, "static"},
		{accFinal, "final"},
		{accVolatile, "volatile"},
		{accTransient, "transient"},
		{accSynthetic, "synthetic"},
		{accEnum, "enum"},
	})
}

type MethodAccessFlags uint16

const methodAccessMask = accPublic | accPrivate | accProtected | accStatic |
	accFinal | accSynchronized | accBridge | accVarargs | accNative |
	accAbstract | accStrict | accSynthetic

// MethodAccessFlagsFromBits validates a raw flag word against the bits
// defined for the method context.
func MethodAccessFlagsFromBits(bits uint16) (MethodAccessFlags, error) {
	if bits&^methodAccessMask != 0 {
		return 0, invalidClassData("invalid method flags: 0x%04X", bits)
	}
	return MethodAccessFlags(bits), nil
}

func (f MethodAccessFlags) IsPublic() bool       { return uint16(f)&accPublic != 0 }
func (f MethodAccessFlags) IsPrivate() bool      { return uint16(f)&accPrivate != 0 }
func (f MethodAccessFlags) IsProtected() bool    { return uint16(f)&accProtected != 0 }
func (f MethodAccessFlags) IsStatic() bool       { return uint16(f)&accStatic != 0 }
func (f MethodAccessFlags) IsFinal() bool        { return uint16(f)&accFinal != 0 }
func (f MethodAccessFlags) IsSynchronized() bool { return uint16(f)&accSynchronized != 0 }
func (f MethodAccessFlags) IsBridge() bool       { return uint16(f)&accBridge != 0 }
func (f MethodAccessFlags) IsVarargs() bool      { return uint16(f)&accVarargs != 0 }
func (f MethodAccessFlags) IsNative() bool       { return uint16(f)&accNative != 0 }
func (f MethodAccessFlags) IsAbstract() bool     { return uint16(f)&accAbstract != 0 }
func (f MethodAccessFlags) IsStrict() bool       { return uint16(f)&accStrict != 0 }
func (f MethodAccessFlags) IsSynthetic() bool    { return uint16(f)&accSynthetic != 0 }

func (f MethodAccessFlags) String() string {
	return flagString(uint16(f), []flagName{
		{accPublic, "public"},
		{accPrivate, "private"},
		{accProtected, "protected"},
		{accStatic, "static"},
		{accFinal, "final"},
		{accSynchronized, "synchronized"},
		{accBridge, "bridge"},
		{accVarargs, "varargs"},
		{accNative, "native"},
		{accAbstract, "abstract"},
		{accStrict, "strict"},
		{accSynthetic, "synthetic"},
	})
}

type flagName struct {
	bit  uint16
	name string
}

func flagString(bits uint16, names []flagName) string {
	var set []string
	for _, fn := range names {
		if bits&fn.bit != 0 {
			set = append(set, fn.name)
		}
	}
	return strings.Join(set, " ")
}
