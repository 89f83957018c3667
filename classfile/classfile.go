package classfile

import (
	"fmt"
	"strings"
)

// ClassFile is the fully parsed, immutable representation of one .class
// file. It is built in a single pass by Read and never mutated afterwards,
// so it may be shared freely across goroutines.
type ClassFile struct {
	Version    ClassFileVersion
	Constants  *ConstantPool
	Flags      ClassAccessFlags
	Name       string
	Superclass string // empty only for java/lang/Object
	Interfaces []string
	Fields     []ClassFileField
	Methods    []ClassFileMethod
	Deprecated bool
	SourceFile string
	Attributes []Attribute
}

// GetField returns the first field with the given name, or nil. Fields
// keep their declaration order.
func (cf *ClassFile) GetField(name string) *ClassFileField {
	for i := range cf.Fields {
		if cf.Fields[i].Name == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// GetMethod returns the first method matching name and descriptor; an
// empty descriptor matches any overload.
func (cf *ClassFile) GetMethod(name, descriptor string) *ClassFileMethod {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			if descriptor == "" || cf.Methods[i].Descriptor == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

// GetMethods returns all methods with the given name in declaration order.
func (cf *ClassFile) GetMethods(name string) []*ClassFileMethod {
	var methods []*ClassFileMethod
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods
}

func (cf *ClassFile) GetAttribute(name string) *Attribute {
	for i := range cf.Attributes {
		if cf.Attributes[i].Name == name {
			return &cf.Attributes[i]
		}
	}
	return nil
}

func (cf *ClassFile) IsInterface() bool  { return cf.Flags.IsInterface() }
func (cf *ClassFile) IsAnnotation() bool { return cf.Flags.IsAnnotation() }
func (cf *ClassFile) IsEnum() bool       { return cf.Flags.IsEnum() }
func (cf *ClassFile) IsModule() bool     { return cf.Flags.IsModule() }

// String renders the class for diagnostics, including the full constant
// pool dump.
func (cf *ClassFile) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Class %s ", cf.Name)
	if cf.Superclass != "" {
		fmt.Fprintf(&sb, "(extends %s) ", cf.Superclass)
	}
	fmt.Fprintf(&sb, "version: %s\n", cf.Version)
	sb.WriteString(cf.Constants.String())
	fmt.Fprintf(&sb, "flags: [%s], deprecated: %t\n", cf.Flags, cf.Deprecated)
	if cf.SourceFile != "" {
		fmt.Fprintf(&sb, "source file: %s\n", cf.SourceFile)
	}
	fmt.Fprintf(&sb, "interfaces: %v\n", cf.Interfaces)
	sb.WriteString("fields:\n")
	for i := range cf.Fields {
		fmt.Fprintf(&sb, "  - %s\n", &cf.Fields[i])
	}
	sb.WriteString("methods:\n")
	for i := range cf.Methods {
		fmt.Fprintf(&sb, "  - %s\n", &cf.Methods[i])
	}
	return sb.String()
}
