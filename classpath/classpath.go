// Package classpath resolves binary class names to raw class file bytes.
// It is the input boundary of the reader: entries know how to look a class
// up in a directory or inside a jar, and a ClassPath chains entries in
// order, first hit wins.
package classpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/jclass/classfile"
)

// Entry is a single class path element. Resolve returns (nil, nil) when
// the entry does not contain the class; an error means the lookup itself
// failed.
type Entry interface {
	Resolve(className string) ([]byte, error)
}

// DirEntry resolves classes against a directory tree, mapping the binary
// name com/example/Foo to com/example/Foo.class below the root.
type DirEntry struct {
	root string
}

func NewDirEntry(root string) *DirEntry {
	return &DirEntry{root: root}
}

func (e *DirEntry) Resolve(className string) ([]byte, error) {
	path := filepath.Join(e.root, filepath.FromSlash(className)+".class")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("classpath: reading %s: %w", path, err)
	}
	return data, nil
}

func (e *DirEntry) String() string { return e.root }

// ClassPath is an ordered list of entries searched front to back.
type ClassPath struct {
	entries []Entry
}

func New(entries ...Entry) *ClassPath {
	return &ClassPath{entries: entries}
}

// Parse builds a ClassPath from a separator-joined string such as
// "out/classes:lib/rt.jar", using the platform list separator. Jar, zip
// and jmod elements become jar entries, everything else a directory.
func Parse(spec string) (*ClassPath, error) {
	cp := &ClassPath{}
	for _, element := range strings.Split(spec, string(os.PathListSeparator)) {
		if element == "" {
			continue
		}
		switch strings.ToLower(filepath.Ext(element)) {
		case ".jar", ".zip", ".jmod":
			jar, err := NewJarEntry(element)
			if err != nil {
				return nil, err
			}
			cp.entries = append(cp.entries, jar)
		default:
			cp.entries = append(cp.entries, NewDirEntry(element))
		}
	}
	return cp, nil
}

// Add appends an entry to the end of the search order.
func (cp *ClassPath) Add(entry Entry) {
	cp.entries = append(cp.entries, entry)
}

// Resolve searches all entries in order. (nil, nil) means no entry
// contains the class.
func (cp *ClassPath) Resolve(className string) ([]byte, error) {
	for _, entry := range cp.entries {
		data, err := entry.Resolve(className)
		if err != nil {
			return nil, err
		}
		if data != nil {
			return data, nil
		}
	}
	return nil, nil
}

// LoadClass resolves a class name and parses the result.
func (cp *ClassPath) LoadClass(className string) (*classfile.ClassFile, error) {
	data, err := cp.Resolve(className)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("classpath: class %s not found", className)
	}
	cf, err := classfile.Read(data)
	if err != nil {
		return nil, fmt.Errorf("classpath: parsing %s: %w", className, err)
	}
	return cf, nil
}
