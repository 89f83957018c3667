package classfile

import "strings"

// FieldType is the structured form of a field descriptor such as "I" or
// "[Ljava/lang/String;". Exactly one of BaseType and ClassName is set.
type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(strings.ReplaceAll(ft.ClassName, "/", "."))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool     { return ft.ArrayDepth > 0 }
func (ft *FieldType) IsPrimitive() bool { return ft.BaseType != "" && ft.ArrayDepth == 0 }
func (ft *FieldType) IsReference() bool { return ft.ClassName != "" || ft.ArrayDepth > 0 }

// MethodDescriptor is the structured form of a method descriptor such as
// "(ILjava/lang/String;)V". A nil ReturnType means void.
type MethodDescriptor struct {
	Parameters []FieldType
	ReturnType *FieldType
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(md.Parameters[i].String())
	}
	sb.WriteString(") ")
	if md.ReturnType != nil {
		sb.WriteString(md.ReturnType.String())
	} else {
		sb.WriteString("void")
	}
	return sb.String()
}

// ParseFieldDescriptor interprets a single field descriptor. The whole
// string must be consumed.
func ParseFieldDescriptor(desc string) (*FieldType, error) {
	ft, consumed, err := parseFieldType(desc, 0)
	if err != nil {
		return nil, err
	}
	if consumed != len(desc) {
		return nil, &InvalidTypeDescriptorError{Descriptor: desc}
	}
	return ft, nil
}

// ParseMethodDescriptor interprets a method descriptor: a parenthesized
// parameter list followed by a return type, with "V" meaning void.
func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, &InvalidTypeDescriptorError{Descriptor: desc}
	}

	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, consumed, err := parseFieldType(desc, i)
		if err != nil {
			return nil, &InvalidTypeDescriptorError{Descriptor: desc}
		}
		md.Parameters = append(md.Parameters, *ft)
		i += consumed
	}
	if i >= len(desc) || desc[i] != ')' {
		return nil, &InvalidTypeDescriptorError{Descriptor: desc}
	}
	i++

	if i >= len(desc) {
		return nil, &InvalidTypeDescriptorError{Descriptor: desc}
	}
	if desc[i] == 'V' {
		if i+1 != len(desc) {
			return nil, &InvalidTypeDescriptorError{Descriptor: desc}
		}
		return md, nil
	}
	returnType, consumed, err := parseFieldType(desc, i)
	if err != nil || i+consumed != len(desc) {
		return nil, &InvalidTypeDescriptorError{Descriptor: desc}
	}
	md.ReturnType = returnType
	return md, nil
}

func parseFieldType(desc string, start int) (*FieldType, int, error) {
	i := start
	ft := &FieldType{}
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return nil, 0, &InvalidTypeDescriptorError{Descriptor: desc}
	}

	switch desc[i] {
	case 'B':
		ft.BaseType = "byte"
	case 'C':
		ft.BaseType = "char"
	case 'D':
		ft.BaseType = "double"
	case 'F':
		ft.BaseType = "float"
	case 'I':
		ft.BaseType = "int"
	case 'J':
		ft.BaseType = "long"
	case 'S':
		ft.BaseType = "short"
	case 'Z':
		ft.BaseType = "boolean"
	case 'L':
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return nil, 0, &InvalidTypeDescriptorError{Descriptor: desc}
		}
		ft.ClassName = desc[i+1 : i+semicolon]
		return ft, i - start + semicolon + 1, nil
	default:
		return nil, 0, &InvalidTypeDescriptorError{Descriptor: desc}
	}
	return ft, i - start + 1, nil
}

// InternalToSourceName converts a binary class name to its source form,
// e.g. "java/lang/Object" to "java.lang.Object".
func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

// SourceToInternalName converts a source class name to its binary form.
func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
