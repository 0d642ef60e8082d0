package reader

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds reported by model readers. Use errors.Is to check a
// returned error against one of them.
var (
	ErrArgCount        = errors.New("argument count mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrSyntax          = errors.New("invalid syntax")
	ErrUnsupported     = errors.New("unsupported model format")
)

// A ParseError describes a problem with a particular line of a model file.
type ParseError struct {
	File string
	Line int
	Kind error
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s: %d] error: %s", e.File, e.Line, e.Msg)
}

// Unwrap returns the error kind.
func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Cause returns the error kind; see github.com/pkg/errors.
func (e *ParseError) Cause() error {
	return e.Kind
}

// A line level error that is tagged with file and line info by the reader.
type lineError struct {
	kind error
	msg  string
}

func (e *lineError) Error() string {
	return e.msg
}

func argCountError(format string, args ...interface{}) error {
	return &lineError{kind: ErrArgCount, msg: fmt.Sprintf(format, args...)}
}

func indexError(format string, args ...interface{}) error {
	return &lineError{kind: ErrIndexOutOfRange, msg: fmt.Sprintf(format, args...)}
}

func syntaxError(format string, args ...interface{}) error {
	return &lineError{kind: ErrSyntax, msg: fmt.Sprintf(format, args...)}
}
