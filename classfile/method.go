package classfile

import "fmt"

// ClassFileMethod is one method declaration. Attribute bodies are kept as
// raw bytes; interpreting Code and the rest is the executing runtime's
// concern, not the reader's.
type ClassFileMethod struct {
	Flags      MethodAccessFlags
	Name       string
	Descriptor string
	Attributes []Attribute
}

func (m *ClassFileMethod) String() string {
	return fmt.Sprintf("[%s] %s: %s", m.Flags, m.Name, m.Descriptor)
}

func (m *ClassFileMethod) IsConstructor() bool {
	return m.Name == "<init>"
}

func (m *ClassFileMethod) IsStaticInitializer() bool {
	return m.Name == "<clinit>"
}

func (m *ClassFileMethod) GetAttribute(name string) *Attribute {
	for i := range m.Attributes {
		if m.Attributes[i].Name == name {
			return &m.Attributes[i]
		}
	}
	return nil
}

// ParsedDescriptor interprets the method's raw descriptor.
func (m *ClassFileMethod) ParsedDescriptor() (*MethodDescriptor, error) {
	return ParseMethodDescriptor(m.Descriptor)
}
