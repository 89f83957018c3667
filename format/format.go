// Package format renders parsed class files for human and machine
// consumption. Encoders share one shape: construct with a writer, call
// Encode with the class.
package format

import (
	"encoding"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(class *classfile.ClassFile) error
}

// splitClassName splits an internal binary name into its package and
// simple name, both in source form.
func splitClassName(internal string) (pkg, simple string) {
	source := classfile.InternalToSourceName(internal)
	if i := strings.LastIndexByte(source, '.'); i >= 0 {
		return source[:i], source[i+1:]
	}
	return "", source
}

func classVisibility(flags classfile.ClassAccessFlags) string {
	if flags.IsPublic() {
		return "public"
	}
	return "package-private"
}

func fieldVisibility(flags classfile.FieldAccessFlags) string {
	switch {
	case flags.IsPublic():
		return "public"
	case flags.IsPrivate():
		return "private"
	case flags.IsProtected():
		return "protected"
	default:
		return "package-private"
	}
}

func methodVisibility(flags classfile.MethodAccessFlags) string {
	switch {
	case flags.IsPublic():
		return "public"
	case flags.IsPrivate():
		return "private"
	case flags.IsProtected():
		return "protected"
	default:
		return "package-private"
	}
}

// elementName returns the type's name without array suffixes, in source
// form for class types.
func elementName(t *classfile.FieldType) string {
	if t.ClassName != "" {
		return classfile.InternalToSourceName(t.ClassName)
	}
	return t.BaseType
}
