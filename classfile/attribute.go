package classfile

import "fmt"

// Attribute is one attribute record with its name resolved and its body
// kept verbatim. Only ConstantValue, SourceFile and Deprecated are
// interpreted by the reader itself.
type Attribute struct {
	Name string
	Info []byte
}

func (a *Attribute) String() string {
	return fmt.Sprintf("%s (%d bytes)", a.Name, len(a.Info))
}

// Attribute names the reader interprets during parsing.
const (
	attrConstantValue = "ConstantValue"
	attrSourceFile    = "SourceFile"
	attrDeprecated    = "Deprecated"
)
