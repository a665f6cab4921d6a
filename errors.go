package dryc

import (
	"errors"
	"fmt"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeFilename            = "filename"
	CodeGrammar             = "grammar"
	CodeReservedName        = "reserved_name"
	CodeDuplicateDefinition = "duplicate_definition"
	CodeRequired            = "required"
	CodeUnknownProperty     = "unknown_property"
	CodeInvalidValue        = "invalid_value"
	CodeUnknownID           = "unknown_id"
	CodeDuplicateScene      = "duplicate_scene"
)

// Error is the single failure value produced by parsing, validation and
// linking. Message never carries the trailing period; Error adds it.
type Error struct {
	Code    string // One of the codes listed above.
	Message string
	Line    int // 1-based source line (0 when unknown).
	// Value optionally references the offending raw value.
	Value any
}

// Errorf creates an Error without a line number.
func Errorf(code, format string, a ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// ErrorAt creates an Error tied to the given line.
func ErrorAt(line int, code, format string, a ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...), Line: line}
}

// Error renders "Line <n>: <message>." or "<message>." when the line is unknown.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Line %d: %s.", e.Line, e.Message)
	}
	return e.Message + "."
}

// WithLine returns e with its line filled in when it was unknown. A line that
// is already set is never overwritten: the innermost position wins.
func (e *Error) WithLine(line int) *Error {
	if e.Line > 0 || line <= 0 {
		return e
	}
	cp := *e
	cp.Line = line
	return &cp
}

// WithValue returns a copy of e referencing the offending raw value.
func (e *Error) WithValue(v any) *Error {
	cp := *e
	cp.Value = v
	return &cp
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AttachLine fills in the line of err when it is an *Error without one.
// Other errors are returned untouched.
func AttachLine(err error, line int) error {
	if err == nil || line <= 0 {
		return err
	}
	var e *Error
	if errors.As(err, &e) && e.Line == 0 {
		return e.WithLine(line)
	}
	return err
}
