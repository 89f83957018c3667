package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

// JavaEncoder renders the class as a Java-like declaration skeleton:
// the shape of the type and its members, with method bodies elided.
// Parameter names are not stored in the class file, so parameters show
// types only.
type JavaEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	pkg, _ := splitClassName(e.class.Name)

	if pkg != "" {
		sb.WriteString("package ")
		sb.WriteString(pkg)
		sb.WriteString(";\n\n")
	}

	e.writeClassDeclaration(&sb)
	sb.WriteString(" {\n")

	e.writeFields(&sb)
	e.writeMethods(&sb)

	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func (e *JavaEncoder) writeClassDeclaration(sb *strings.Builder) {
	c := e.class
	_, simple := splitClassName(c.Name)

	if c.Flags.IsPublic() {
		sb.WriteString("public ")
	}
	if c.Flags.IsAbstract() && !c.IsInterface() {
		sb.WriteString("abstract ")
	}
	if c.Flags.IsFinal() {
		sb.WriteString("final ")
	}

	switch {
	case c.IsAnnotation():
		sb.WriteString("@interface ")
	case c.IsEnum():
		sb.WriteString("enum ")
	case c.IsInterface():
		sb.WriteString("interface ")
	default:
		sb.WriteString("class ")
	}

	sb.WriteString(simple)

	if super := c.Superclass; super != "" && super != "java/lang/Object" && !c.IsEnum() {
		sb.WriteString(" extends ")
		sb.WriteString(classfile.InternalToSourceName(super))
	}

	if len(c.Interfaces) > 0 {
		if c.IsInterface() {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		names := make([]string, len(c.Interfaces))
		for i, iface := range c.Interfaces {
			names[i] = classfile.InternalToSourceName(iface)
		}
		sb.WriteString(strings.Join(names, ", "))
	}
}

func (e *JavaEncoder) writeFields(sb *strings.Builder) {
	written := 0
	for i := range e.class.Fields {
		f := &e.class.Fields[i]
		if f.Flags.IsSynthetic() {
			continue
		}
		sb.WriteString("    ")
		e.writeFieldDeclaration(sb, f)
		sb.WriteString(";\n")
		written++
	}
	if written > 0 {
		sb.WriteString("\n")
	}
}

func (e *JavaEncoder) writeFieldDeclaration(sb *strings.Builder, f *classfile.ClassFileField) {
	if v := fieldVisibility(f.Flags); v != "package-private" {
		sb.WriteString(v)
		sb.WriteString(" ")
	}
	if f.Flags.IsStatic() {
		sb.WriteString("static ")
	}
	if f.Flags.IsFinal() {
		sb.WriteString("final ")
	}
	if f.Flags.IsVolatile() {
		sb.WriteString("volatile ")
	}
	if f.Flags.IsTransient() {
		sb.WriteString("transient ")
	}
	sb.WriteString(renderFieldType(f.Descriptor))
	sb.WriteString(" ")
	sb.WriteString(f.Name)
	if f.ConstantValue != nil {
		fmt.Fprintf(sb, " = %v", f.ConstantValue)
	}
}

func (e *JavaEncoder) writeMethods(sb *strings.Builder) {
	first := true
	for i := range e.class.Methods {
		m := &e.class.Methods[i]
		if m.Flags.IsSynthetic() || m.Flags.IsBridge() || m.IsStaticInitializer() {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false
		sb.WriteString("    ")
		e.writeMethodDeclaration(sb, m)
		if m.Flags.IsAbstract() || m.Flags.IsNative() || e.class.IsInterface() {
			sb.WriteString(";\n")
		} else {
			sb.WriteString(" { }\n")
		}
	}
}

func (e *JavaEncoder) writeMethodDeclaration(sb *strings.Builder, m *classfile.ClassFileMethod) {
	if v := methodVisibility(m.Flags); v != "package-private" {
		sb.WriteString(v)
		sb.WriteString(" ")
	}
	if m.Flags.IsStatic() {
		sb.WriteString("static ")
	}
	if m.Flags.IsFinal() {
		sb.WriteString("final ")
	}
	if m.Flags.IsAbstract() && !e.class.IsInterface() {
		sb.WriteString("abstract ")
	}
	if m.Flags.IsSynchronized() {
		sb.WriteString("synchronized ")
	}
	if m.Flags.IsNative() {
		sb.WriteString("native ")
	}

	md, err := m.ParsedDescriptor()
	if err != nil {
		// Unparseable descriptor, keep the raw string visible.
		sb.WriteString(m.Name)
		sb.WriteString(m.Descriptor)
		return
	}

	if m.IsConstructor() {
		_, simple := splitClassName(e.class.Name)
		sb.WriteString(simple)
	} else {
		if md.ReturnType != nil {
			sb.WriteString(md.ReturnType.String())
		} else {
			sb.WriteString("void")
		}
		sb.WriteString(" ")
		sb.WriteString(m.Name)
	}

	sb.WriteString("(")
	for i := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(md.Parameters[i].String())
	}
	sb.WriteString(")")
}

func renderFieldType(descriptor string) string {
	ft, err := classfile.ParseFieldDescriptor(descriptor)
	if err != nil {
		return descriptor
	}
	return ft.String()
}
