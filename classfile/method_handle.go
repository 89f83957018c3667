package classfile

import "fmt"

// MethodHandleTarget says which kind of symbolic reference a resolved
// method handle points at.
type MethodHandleTarget uint8

const (
	TargetFieldRef MethodHandleTarget = iota
	TargetMethodRef
	TargetInterfaceMethodRef
)

func (t MethodHandleTarget) String() string {
	switch t {
	case TargetFieldRef:
		return "FieldRef"
	case TargetMethodRef:
		return "MethodRef"
	case TargetInterfaceMethodRef:
		return "InterfaceMethodRef"
	default:
		return "unknown"
	}
}

// MethodHandle is a validated (kind, constant pool index) pair: the target
// entry's class and name-and-type indices, classified by reference kind.
type MethodHandle struct {
	Target           MethodHandleTarget
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

// ResolveMethodHandle checks a method handle's reference kind against the
// constant pool entry it points at and returns the classified reference.
//
// Kinds 6 and 7 (invokeStatic, invokeSpecial) accept an
// InterfaceMethodref target only from class file version 52 on, when
// interface static and default methods became invocable through handles.
// Below 52 only a plain Methodref is legal. This branch encodes a one-time
// format change and is deliberately not collapsed into a lookup table.
//
// TODO: for kinds 5, 6, 7 and 9 reject targets named <init> or <clinit>,
// and for kind 8 reject targets not named <init>. Deferred until name
// resolution of the target member is needed by a consumer.
func ResolveMethodHandle(version ClassFileVersion, pool *ConstantPool, kind uint8, index uint16) (MethodHandle, error) {
	entry, err := pool.Get(index)
	if err != nil {
		return MethodHandle{}, &MethodHandleValidationError{
			Kind: kind, Index: index, Detail: err.Error(),
		}
	}

	mismatch := func(expected string) (MethodHandle, error) {
		return MethodHandle{}, &MethodHandleValidationError{
			Kind:   kind,
			Index:  index,
			Detail: fmt.Sprintf("expected %s, found entry with tag %d", expected, entry.Tag()),
		}
	}

	switch MethodHandleKind(kind) {
	case RefGetField, RefGetStatic, RefPutField, RefPutStatic:
		if e, ok := entry.(*ConstantFieldrefInfo); ok {
			return MethodHandle{TargetFieldRef, e.ClassIndex, e.NameAndTypeIndex}, nil
		}
		return mismatch("a field reference")
	case RefInvokeVirtual, RefNewInvokeSpecial:
		if e, ok := entry.(*ConstantMethodrefInfo); ok {
			return MethodHandle{TargetMethodRef, e.ClassIndex, e.NameAndTypeIndex}, nil
		}
		return mismatch("a method reference")
	case RefInvokeStatic, RefInvokeSpecial:
		if version.Major < 52 {
			if e, ok := entry.(*ConstantMethodrefInfo); ok {
				return MethodHandle{TargetMethodRef, e.ClassIndex, e.NameAndTypeIndex}, nil
			}
			return mismatch("a method reference")
		}
		switch e := entry.(type) {
		case *ConstantMethodrefInfo:
			return MethodHandle{TargetMethodRef, e.ClassIndex, e.NameAndTypeIndex}, nil
		case *ConstantInterfaceMethodrefInfo:
			return MethodHandle{TargetInterfaceMethodRef, e.ClassIndex, e.NameAndTypeIndex}, nil
		default:
			return mismatch("a method or interface method reference")
		}
	case RefInvokeInterface:
		if e, ok := entry.(*ConstantInterfaceMethodrefInfo); ok {
			return MethodHandle{TargetInterfaceMethodRef, e.ClassIndex, e.NameAndTypeIndex}, nil
		}
		return mismatch("an interface method reference")
	default:
		return MethodHandle{}, &InvalidMethodHandleKindError{Kind: kind}
	}
}
