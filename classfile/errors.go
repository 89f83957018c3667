package classfile

import (
	"errors"
	"fmt"
)

// Errors returned while reading raw bytes from a class file buffer.
var (
	ErrUnexpectedEndOfData = errors.New("unexpected end of class file data")
	ErrInvalidTextEncoding = errors.New("invalid modified utf-8 string")
)

// ErrResolutionDepthExceeded is returned by ConstantPool.TextOf when
// resolving an entry requires following more references than any
// well-formed constant pool can contain.
var ErrResolutionDepthExceeded = errors.New("constant pool reference depth exceeded")

// InvalidConstantPoolIndexError reports an access to a constant pool slot
// that does not exist or is the second slot of an 8-byte constant.
type InvalidConstantPoolIndexError struct {
	Index uint16
}

func (e *InvalidConstantPoolIndexError) Error() string {
	return fmt.Sprintf("invalid constant pool index: %d", e.Index)
}

// InvalidMethodHandleKindError reports a method handle reference kind
// outside the nine defined by the class file format.
type InvalidMethodHandleKindError struct {
	Kind uint8
}

func (e *InvalidMethodHandleKindError) Error() string {
	return fmt.Sprintf("invalid method handle kind: %d", e.Kind)
}

// InvalidClassDataError reports a structural violation in the class file:
// bad magic number, unknown constant tag, unknown flag bits, malformed
// attribute payloads.
type InvalidClassDataError struct {
	Detail string
	Cause  error
}

func (e *InvalidClassDataError) Error() string {
	return fmt.Sprintf("invalid class file: %s", e.Detail)
}

func (e *InvalidClassDataError) Unwrap() error { return e.Cause }

func invalidClassData(format string, args ...any) error {
	return &InvalidClassDataError{Detail: fmt.Sprintf(format, args...)}
}

// InvalidClassDataIndexError reports a constant pool index that was read
// from the class file but does not resolve to a live entry.
type InvalidClassDataIndexError struct {
	Detail string
	Cause  error
}

func (e *InvalidClassDataIndexError) Error() string {
	return fmt.Sprintf("invalid class file: %s", e.Detail)
}

func (e *InvalidClassDataIndexError) Unwrap() error { return e.Cause }

// UnsupportedVersionError reports a class file whose major version falls
// outside the range this reader understands.
type UnsupportedVersionError struct {
	Major uint16
	Minor uint16
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported class file version %d.%d", e.Major, e.Minor)
}

// InvalidTypeDescriptorError reports a field or method descriptor string
// that does not follow the grammar of the class file format.
type InvalidTypeDescriptorError struct {
	Descriptor string
}

func (e *InvalidTypeDescriptorError) Error() string {
	return fmt.Sprintf("invalid type descriptor: %q", e.Descriptor)
}

// MethodHandleValidationError reports a method handle whose reference kind
// and target constant pool entry do not agree.
type MethodHandleValidationError struct {
	Kind   uint8
	Index  uint16
	Detail string
}

func (e *MethodHandleValidationError) Error() string {
	return fmt.Sprintf("invalid method handle (kind %d, index %d): %s", e.Kind, e.Index, e.Detail)
}

// wrapPoolError converts a constant pool lookup failure, observed while a
// class file structure referenced the pool, into the parse-level taxonomy.
func wrapPoolError(err error, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	var idxErr *InvalidConstantPoolIndexError
	if errors.As(err, &idxErr) {
		return &InvalidClassDataIndexError{
			Detail: fmt.Sprintf("%s: %s", detail, err),
			Cause:  err,
		}
	}
	return &InvalidClassDataError{
		Detail: fmt.Sprintf("%s: %s", detail, err),
		Cause:  err,
	}
}
