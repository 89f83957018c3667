package classfile

import "fmt"

// ClassFileField is one field declaration. Name and descriptor are already
// resolved through the constant pool; the descriptor stays a raw string,
// structured interpretation belongs to the caller (see descriptor.go for a
// convenience parser).
type ClassFileField struct {
	Flags         FieldAccessFlags
	Name          string
	Descriptor    string
	ConstantValue FieldConstantValue // nil unless a ConstantValue attribute was present
}

func (f *ClassFileField) String() string {
	s := fmt.Sprintf("[%s] %s: %s", f.Flags, f.Name, f.Descriptor)
	if f.ConstantValue != nil {
		s += fmt.Sprintf(" = %v", f.ConstantValue)
	}
	return s
}

// ParsedDescriptor interprets the field's raw descriptor.
func (f *ClassFileField) ParsedDescriptor() (*FieldType, error) {
	return ParseFieldDescriptor(f.Descriptor)
}

// FieldConstantValue is the typed value of a ConstantValue attribute. The
// variant is chosen from the referenced constant pool entry's kind, never
// from the attribute payload alone.
type FieldConstantValue interface {
	isFieldConstantValue()
}

type StringConstantValue struct{ Value string }
type IntConstantValue struct{ Value int32 }
type FloatConstantValue struct{ Value float32 }
type LongConstantValue struct{ Value int64 }
type DoubleConstantValue struct{ Value float64 }

func (StringConstantValue) isFieldConstantValue() {}
func (IntConstantValue) isFieldConstantValue()    {}
func (FloatConstantValue) isFieldConstantValue()  {}
func (LongConstantValue) isFieldConstantValue()   {}
func (DoubleConstantValue) isFieldConstantValue() {}

func (v StringConstantValue) String() string { return fmt.Sprintf("%q", v.Value) }
func (v IntConstantValue) String() string    { return fmt.Sprintf("%d", v.Value) }
func (v FloatConstantValue) String() string  { return formatFloat(float64(v.Value), 32) }
func (v LongConstantValue) String() string   { return fmt.Sprintf("%d", v.Value) }
func (v DoubleConstantValue) String() string { return formatFloat(v.Value, 64) }
