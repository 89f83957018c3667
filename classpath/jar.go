package classpath

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// JarEntry resolves classes from a jar, zip or jmod archive. The archive
// is read into memory once; lookups afterwards touch only the in-memory
// index, so a JarEntry is safe for concurrent use.
type JarEntry struct {
	path   string
	reader *zip.Reader
	// jmod archives store classes below a classes/ prefix
	prefix string
}

func NewJarEntry(path string) (*JarEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classpath: reading %s: %w", path, err)
	}

	prefix := ""
	if strings.HasSuffix(strings.ToLower(path), ".jmod") {
		// Skip the "JM\x01\x00" header in front of the zip data.
		if len(data) < 4 {
			return nil, fmt.Errorf("classpath: %s is not a jmod archive", path)
		}
		data = data[4:]
		prefix = "classes/"
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("classpath: opening %s: %w", path, err)
	}
	return &JarEntry{path: path, reader: reader, prefix: prefix}, nil
}

func (e *JarEntry) Resolve(className string) ([]byte, error) {
	target := e.prefix + className + ".class"
	file, err := e.reader.Open(target)
	if err != nil {
		// Not present in this archive; let the next entry try.
		return nil, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("classpath: reading %s from %s: %w", target, e.path, err)
	}
	return data, nil
}

func (e *JarEntry) String() string { return e.path }
