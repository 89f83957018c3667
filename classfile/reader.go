package classfile

import (
	"encoding/binary"
	"fmt"
	"os"
)

// classFileReader walks the class file format in its fixed order, filling
// in the ClassFile as it goes. The first error aborts the whole parse; no
// partial ClassFile is ever returned.
type classFileReader struct {
	buf       *Buffer
	classFile ClassFile
}

// Read parses a class file image. The input slice is not retained except
// through raw attribute payloads, which alias it.
func Read(data []byte) (*ClassFile, error) {
	r := &classFileReader{buf: NewBuffer(data)}
	return r.read()
}

// ReadFile parses the class file at the given path.
func ReadFile(path string) (*ClassFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading class file: %w", err)
	}
	return Read(data)
}

func (r *classFileReader) read() (*ClassFile, error) {
	steps := []func() error{
		r.checkMagicNumber,
		r.readVersion,
		r.readConstants,
		r.readAccessFlags,
		r.readThisClass,
		r.readSuperClass,
		r.readInterfaces,
		r.readFields,
		r.readMethods,
		r.readClassAttributes,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return &r.classFile, nil
}

func (r *classFileReader) checkMagicNumber() error {
	magic, err := r.buf.ReadU32()
	if err != nil {
		return err
	}
	if magic != Magic {
		return invalidClassData("invalid magic number")
	}
	return nil
}

func (r *classFileReader) readVersion() error {
	minor, err := r.buf.ReadU16()
	if err != nil {
		return err
	}
	major, err := r.buf.ReadU16()
	if err != nil {
		return err
	}
	version, err := NewClassFileVersion(major, minor)
	if err != nil {
		return err
	}
	r.classFile.Version = version
	return nil
}

func (r *classFileReader) readConstants() error {
	count, err := r.buf.ReadU16()
	if err != nil {
		return err
	}
	if count == 0 {
		return invalidClassData("constant pool count must be at least 1")
	}
	pool := NewConstantPool()
	// The count includes the phantom slot 0, and Long/Double entries
	// consume two logical indices.
	constantsCount := count - 1
	for i := uint16(0); i < constantsCount; {
		entry, err := r.readConstant()
		if err != nil {
			return err
		}
		pool.Add(entry)
		switch entry.(type) {
		case *ConstantLongInfo, *ConstantDoubleInfo:
			i += 2
		default:
			i++
		}
	}
	r.classFile.Constants = pool
	return nil
}

func (r *classFileReader) readConstant() (ConstantPoolEntry, error) {
	position := r.buf.Position()
	tag, err := r.buf.ReadU8()
	if err != nil {
		return nil, err
	}
	switch ConstantTag(tag) {
	case ConstantUtf8:
		length, err := r.buf.ReadU16()
		if err != nil {
			return nil, err
		}
		value, err := r.buf.ReadModifiedUTF8(int(length))
		if err != nil {
			return nil, err
		}
		return &ConstantUtf8Info{Value: value}, nil
	case ConstantInteger:
		value, err := r.buf.ReadI32()
		if err != nil {
			return nil, err
		}
		return &ConstantIntegerInfo{Value: value}, nil
	case ConstantFloat:
		value, err := r.buf.ReadF32()
		if err != nil {
			return nil, err
		}
		return &ConstantFloatInfo{Value: value}, nil
	case ConstantLong:
		value, err := r.buf.ReadI64()
		if err != nil {
			return nil, err
		}
		return &ConstantLongInfo{Value: value}, nil
	case ConstantDouble:
		value, err := r.buf.ReadF64()
		if err != nil {
			return nil, err
		}
		return &ConstantDoubleInfo{Value: value}, nil
	case ConstantClass:
		nameIndex, err := r.buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &ConstantClassInfo{NameIndex: nameIndex}, nil
	case ConstantString:
		stringIndex, err := r.buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &ConstantStringInfo{StringIndex: stringIndex}, nil
	case ConstantFieldref:
		classIndex, natIndex, err := r.readU16Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantFieldrefInfo{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil
	case ConstantMethodref:
		classIndex, natIndex, err := r.readU16Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantMethodrefInfo{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil
	case ConstantInterfaceMethodref:
		classIndex, natIndex, err := r.readU16Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantInterfaceMethodrefInfo{ClassIndex: classIndex, NameAndTypeIndex: natIndex}, nil
	case ConstantNameAndType:
		nameIndex, descriptorIndex, err := r.readU16Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantNameAndTypeInfo{NameIndex: nameIndex, DescriptorIndex: descriptorIndex}, nil
	case ConstantMethodHandle:
		kind, err := r.buf.ReadU8()
		if err != nil {
			return nil, err
		}
		referenceIndex, err := r.buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &ConstantMethodHandleInfo{
			ReferenceKind:  MethodHandleKind(kind),
			ReferenceIndex: referenceIndex,
		}, nil
	case ConstantMethodType:
		descriptorIndex, err := r.buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &ConstantMethodTypeInfo{DescriptorIndex: descriptorIndex}, nil
	case ConstantDynamic:
		bootstrapIndex, natIndex, err := r.readU16Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantDynamicInfo{BootstrapMethodAttrIndex: bootstrapIndex, NameAndTypeIndex: natIndex}, nil
	case ConstantInvokeDynamic:
		bootstrapIndex, natIndex, err := r.readU16Pair()
		if err != nil {
			return nil, err
		}
		return &ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: bootstrapIndex, NameAndTypeIndex: natIndex}, nil
	case ConstantModule:
		nameIndex, err := r.buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &ConstantModuleInfo{NameIndex: nameIndex}, nil
	case ConstantPackage:
		nameIndex, err := r.buf.ReadU16()
		if err != nil {
			return nil, err
		}
		return &ConstantPackageInfo{NameIndex: nameIndex}, nil
	default:
		return nil, invalidClassData("unknown constant pool tag %d at offset %d", tag, position)
	}
}

func (r *classFileReader) readU16Pair() (uint16, uint16, error) {
	first, err := r.buf.ReadU16()
	if err != nil {
		return 0, 0, err
	}
	second, err := r.buf.ReadU16()
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

func (r *classFileReader) readAccessFlags() error {
	bits, err := r.buf.ReadU16()
	if err != nil {
		return err
	}
	flags, err := ClassAccessFlagsFromBits(bits)
	if err != nil {
		return err
	}
	r.classFile.Flags = flags
	return nil
}

func (r *classFileReader) readThisClass() error {
	name, err := r.readClassReference()
	if err != nil {
		return err
	}
	if name == "" {
		return invalidClassData("this_class index must not be zero")
	}
	r.classFile.Name = name
	return nil
}

func (r *classFileReader) readSuperClass() error {
	// Index 0 is legal here and means "no superclass"; only
	// java/lang/Object uses it.
	name, err := r.readClassReference()
	if err != nil {
		return err
	}
	r.classFile.Superclass = name
	return nil
}

// readClassReference reads a constant pool index and resolves it to a
// binary class name. Index 0 resolves to the empty string.
func (r *classFileReader) readClassReference() (string, error) {
	index, err := r.buf.ReadU16()
	if err != nil {
		return "", err
	}
	if index == 0 {
		return "", nil
	}
	return r.resolveText(index)
}

func (r *classFileReader) resolveText(index uint16) (string, error) {
	text, err := r.classFile.Constants.TextOf(index)
	if err != nil {
		return "", wrapPoolError(err, "cannot resolve constant pool index %d", index)
	}
	return text, nil
}

func (r *classFileReader) readInterfaces() error {
	count, err := r.buf.ReadU16()
	if err != nil {
		return err
	}
	interfaces := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		name, err := r.readClassReference()
		if err != nil {
			return err
		}
		interfaces = append(interfaces, name)
	}
	r.classFile.Interfaces = interfaces
	return nil
}

func (r *classFileReader) readFields() error {
	count, err := r.buf.ReadU16()
	if err != nil {
		return err
	}
	fields := make([]ClassFileField, 0, count)
	for i := uint16(0); i < count; i++ {
		field, err := r.readField()
		if err != nil {
			return err
		}
		fields = append(fields, field)
	}
	r.classFile.Fields = fields
	return nil
}

func (r *classFileReader) readField() (ClassFileField, error) {
	bits, err := r.buf.ReadU16()
	if err != nil {
		return ClassFileField{}, err
	}
	flags, err := FieldAccessFlagsFromBits(bits)
	if err != nil {
		return ClassFileField{}, err
	}
	name, descriptor, err := r.readMemberNameAndDescriptor()
	if err != nil {
		return ClassFileField{}, err
	}
	attributes, err := r.readRawAttributes()
	if err != nil {
		return ClassFileField{}, err
	}
	constantValue, err := r.extractConstantValue(attributes)
	if err != nil {
		return ClassFileField{}, err
	}
	return ClassFileField{
		Flags:         flags,
		Name:          name,
		Descriptor:    descriptor,
		ConstantValue: constantValue,
	}, nil
}

func (r *classFileReader) readMemberNameAndDescriptor() (string, string, error) {
	nameIndex, err := r.buf.ReadU16()
	if err != nil {
		return "", "", err
	}
	name, err := r.resolveText(nameIndex)
	if err != nil {
		return "", "", err
	}
	descriptorIndex, err := r.buf.ReadU16()
	if err != nil {
		return "", "", err
	}
	descriptor, err := r.resolveText(descriptorIndex)
	if err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// extractConstantValue converts a ConstantValue attribute to its typed
// value. The variant follows the referenced pool entry's kind; a payload
// that is not exactly one u16 is rejected.
func (r *classFileReader) extractConstantValue(attributes []Attribute) (FieldConstantValue, error) {
	for i := range attributes {
		if attributes[i].Name != attrConstantValue {
			continue
		}
		if len(attributes[i].Info) != 2 {
			return nil, invalidClassData("invalid attribute of type ConstantValue")
		}
		index := binary.BigEndian.Uint16(attributes[i].Info)
		entry, err := r.classFile.Constants.Get(index)
		if err != nil {
			return nil, wrapPoolError(err, "invalid ConstantValue index %d", index)
		}
		switch e := entry.(type) {
		case *ConstantStringInfo:
			text, err := r.resolveText(e.StringIndex)
			if err != nil {
				return nil, err
			}
			return StringConstantValue{Value: text}, nil
		case *ConstantIntegerInfo:
			return IntConstantValue{Value: e.Value}, nil
		case *ConstantFloatInfo:
			return FloatConstantValue{Value: e.Value}, nil
		case *ConstantLongInfo:
			return LongConstantValue{Value: e.Value}, nil
		case *ConstantDoubleInfo:
			return DoubleConstantValue{Value: e.Value}, nil
		default:
			return nil, invalidClassData("invalid constant type for ConstantValue: tag %d", entry.Tag())
		}
	}
	return nil, nil
}

func (r *classFileReader) readMethods() error {
	count, err := r.buf.ReadU16()
	if err != nil {
		return err
	}
	methods := make([]ClassFileMethod, 0, count)
	for i := uint16(0); i < count; i++ {
		method, err := r.readMethod()
		if err != nil {
			return err
		}
		methods = append(methods, method)
	}
	r.classFile.Methods = methods
	return nil
}

func (r *classFileReader) readMethod() (ClassFileMethod, error) {
	bits, err := r.buf.ReadU16()
	if err != nil {
		return ClassFileMethod{}, err
	}
	flags, err := MethodAccessFlagsFromBits(bits)
	if err != nil {
		return ClassFileMethod{}, err
	}
	name, descriptor, err := r.readMemberNameAndDescriptor()
	if err != nil {
		return ClassFileMethod{}, err
	}
	attributes, err := r.readRawAttributes()
	if err != nil {
		return ClassFileMethod{}, err
	}
	return ClassFileMethod{
		Flags:      flags,
		Name:       name,
		Descriptor: descriptor,
		Attributes: attributes,
	}, nil
}

// readClassAttributes reads the trailing class-level attribute list and
// interprets the two the reader cares about: Deprecated and SourceFile.
func (r *classFileReader) readClassAttributes() error {
	attributes, err := r.readRawAttributes()
	if err != nil {
		return err
	}
	r.classFile.Attributes = attributes
	for i := range attributes {
		switch attributes[i].Name {
		case attrDeprecated:
			r.classFile.Deprecated = true
		case attrSourceFile:
			if len(attributes[i].Info) != 2 {
				return invalidClassData("invalid attribute of type SourceFile")
			}
			index := binary.BigEndian.Uint16(attributes[i].Info)
			name, err := r.resolveText(index)
			if err != nil {
				return err
			}
			r.classFile.SourceFile = name
		}
	}
	return nil
}

func (r *classFileReader) readRawAttributes() ([]Attribute, error) {
	count, err := r.buf.ReadU16()
	if err != nil {
		return nil, err
	}
	attributes := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		attribute, err := r.readRawAttribute()
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, attribute)
	}
	return attributes, nil
}

func (r *classFileReader) readRawAttribute() (Attribute, error) {
	nameIndex, err := r.buf.ReadU16()
	if err != nil {
		return Attribute{}, err
	}
	name, err := r.resolveText(nameIndex)
	if err != nil {
		return Attribute{}, err
	}
	length, err := r.buf.ReadU32()
	if err != nil {
		return Attribute{}, err
	}
	info, err := r.buf.ReadBytes(int(length))
	if err != nil {
		return Attribute{}, err
	}
	return Attribute{Name: name, Info: info}, nil
}
