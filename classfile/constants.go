package classfile

// Magic is the fixed four-byte prefix of every class file.
const Magic = 0xCAFEBABE

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantDynamic            ConstantTag = 17
	ConstantInvokeDynamic      ConstantTag = 18
	ConstantModule             ConstantTag = 19
	ConstantPackage            ConstantTag = 20
)

// MethodHandleKind enumerates the nine reference kinds a
// CONSTANT_MethodHandle entry may carry.
type MethodHandleKind uint8

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

var methodHandleKindNames = map[MethodHandleKind]string{
	RefGetField:         "getField",
	RefGetStatic:        "getStatic",
	RefPutField:         "putField",
	RefPutStatic:        "putStatic",
	RefInvokeVirtual:    "invokeVirtual",
	RefInvokeStatic:     "invokeStatic",
	RefInvokeSpecial:    "invokeSpecial",
	RefNewInvokeSpecial: "newInvokeSpecial",
	RefInvokeInterface:  "invokeInterface",
}

// MethodHandleKindName maps a reference kind byte to its canonical name.
func MethodHandleKindName(kind uint8) (string, error) {
	name, ok := methodHandleKindNames[MethodHandleKind(kind)]
	if !ok {
		return "", &InvalidMethodHandleKindError{Kind: kind}
	}
	return name, nil
}
