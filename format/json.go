package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/jclass/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	class *classfile.ClassFile
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(class *classfile.ClassFile) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildClassData(), "", "  ")
}

type jsonClass struct {
	Name       string       `json:"name"`
	SimpleName string       `json:"simpleName"`
	Package    string       `json:"package"`
	SuperClass string       `json:"superClass,omitempty"`
	Interfaces []string     `json:"interfaces,omitempty"`
	Visibility string       `json:"visibility"`
	Kind       string       `json:"kind"`
	Modifiers  []string     `json:"modifiers,omitempty"`
	Version    jsonVersion  `json:"version"`
	SourceFile string       `json:"sourceFile,omitempty"`
	Deprecated bool         `json:"deprecated,omitempty"`
	Fields     []jsonField  `json:"fields,omitempty"`
	Methods    []jsonMethod `json:"methods,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
	Java  string `json:"java"`
}

type jsonField struct {
	Name          string   `json:"name"`
	Type          jsonType `json:"type"`
	Visibility    string   `json:"visibility"`
	Modifiers     []string `json:"modifiers,omitempty"`
	ConstantValue string   `json:"constantValue,omitempty"`
}

type jsonMethod struct {
	Name       string     `json:"name"`
	ReturnType jsonType   `json:"returnType"`
	Parameters []jsonType `json:"parameters,omitempty"`
	Visibility string     `json:"visibility"`
	Modifiers  []string   `json:"modifiers,omitempty"`
}

type jsonType struct {
	Name       string `json:"name"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	pkg, simple := splitClassName(c.Name)
	var interfaces []string
	for _, iface := range c.Interfaces {
		interfaces = append(interfaces, classfile.InternalToSourceName(iface))
	}
	superClass := ""
	if c.Superclass != "" {
		superClass = classfile.InternalToSourceName(c.Superclass)
	}
	return jsonClass{
		Name:       classfile.InternalToSourceName(c.Name),
		SimpleName: simple,
		Package:    pkg,
		SuperClass: superClass,
		Interfaces: interfaces,
		Visibility: classVisibility(c.Flags),
		Kind:       e.classKind(),
		Modifiers:  e.classModifiers(),
		Version: jsonVersion{
			Major: c.Version.Major,
			Minor: c.Version.Minor,
			Java:  c.Version.JavaRelease(),
		},
		SourceFile: c.SourceFile,
		Deprecated: c.Deprecated,
		Fields:     e.buildFields(),
		Methods:    e.buildMethods(),
	}
}

func (e *JSONEncoder) classKind() string {
	c := e.class
	switch {
	case c.IsAnnotation():
		return "annotation"
	case c.IsEnum():
		return "enum"
	case c.IsInterface():
		return "interface"
	case c.IsModule():
		return "module"
	default:
		return "class"
	}
}

func (e *JSONEncoder) classModifiers() []string {
	flags := e.class.Flags
	var mods []string
	if flags.IsFinal() {
		mods = append(mods, "final")
	}
	if flags.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if flags.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	return mods
}

func (e *JSONEncoder) buildFields() []jsonField {
	result := make([]jsonField, len(e.class.Fields))
	for i := range e.class.Fields {
		f := &e.class.Fields[i]
		constantValue := ""
		if f.ConstantValue != nil {
			constantValue = fmt.Sprintf("%v", f.ConstantValue)
		}
		result[i] = jsonField{
			Name:          f.Name,
			Type:          fieldTypeOf(f.Descriptor),
			Visibility:    fieldVisibility(f.Flags),
			Modifiers:     fieldModifiers(f.Flags),
			ConstantValue: constantValue,
		}
	}
	return result
}

func fieldModifiers(flags classfile.FieldAccessFlags) []string {
	var mods []string
	if flags.IsStatic() {
		mods = append(mods, "static")
	}
	if flags.IsFinal() {
		mods = append(mods, "final")
	}
	if flags.IsVolatile() {
		mods = append(mods, "volatile")
	}
	if flags.IsTransient() {
		mods = append(mods, "transient")
	}
	if flags.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	if flags.IsEnum() {
		mods = append(mods, "enum")
	}
	return mods
}

func (e *JSONEncoder) buildMethods() []jsonMethod {
	result := make([]jsonMethod, len(e.class.Methods))
	for i := range e.class.Methods {
		m := &e.class.Methods[i]
		returnType := jsonType{Name: "void"}
		var parameters []jsonType
		if md, err := m.ParsedDescriptor(); err == nil {
			if md.ReturnType != nil {
				returnType = typeOf(md.ReturnType)
			}
			for j := range md.Parameters {
				parameters = append(parameters, typeOf(&md.Parameters[j]))
			}
		} else {
			// Keep the raw descriptor visible rather than dropping it.
			returnType = jsonType{Name: m.Descriptor}
		}
		result[i] = jsonMethod{
			Name:       m.Name,
			ReturnType: returnType,
			Parameters: parameters,
			Visibility: methodVisibility(m.Flags),
			Modifiers:  methodModifiers(m.Flags),
		}
	}
	return result
}

func methodModifiers(flags classfile.MethodAccessFlags) []string {
	var mods []string
	if flags.IsStatic() {
		mods = append(mods, "static")
	}
	if flags.IsFinal() {
		mods = append(mods, "final")
	}
	if flags.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if flags.IsSynchronized() {
		mods = append(mods, "synchronized")
	}
	if flags.IsNative() {
		mods = append(mods, "native")
	}
	if flags.IsBridge() {
		mods = append(mods, "bridge")
	}
	if flags.IsVarargs() {
		mods = append(mods, "varargs")
	}
	if flags.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	return mods
}

func fieldTypeOf(descriptor string) jsonType {
	ft, err := classfile.ParseFieldDescriptor(descriptor)
	if err != nil {
		return jsonType{Name: descriptor}
	}
	return typeOf(ft)
}

func typeOf(t *classfile.FieldType) jsonType {
	return jsonType{Name: elementName(t), ArrayDepth: t.ArrayDepth}
}
