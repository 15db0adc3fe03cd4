// Package errors carries the coded errors shared by every netinput stage.
//
// Each failure that aborts a parse, a validation or an assembly is an
// [*Error] with a [Code]. Callers branch on the code and may wrap the error
// freely with fmt.Errorf; [Is] and [GetCode] look through the wrapping.
//
//	err := errors.New(errors.ErrCodeDuplicate, "duplicate node name: %s", name)
//	if errors.Is(err, errors.ErrCodeDuplicate) {
//	    ...
//	}
//
// Findings that do not abort a stage are reported as [Warning] values.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a failure.
type Code string

const (
	// ErrCodeInvalidInput: the input could not be read at all.
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	// ErrCodeInvalidStructure: wrong field count or document shape.
	ErrCodeInvalidStructure Code = "INVALID_STRUCTURE"
	// ErrCodeInvalidValue: an enumerated or ranged field holds a bad value.
	ErrCodeInvalidValue Code = "INVALID_VALUE"
	// ErrCodeInvalidNumber: a numeric field could not be converted.
	ErrCodeInvalidNumber Code = "INVALID_NUMBER"
	// ErrCodeInvalidFormat: an input or output format is not supported.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// ErrCodeDuplicate: a name or id is defined twice.
	ErrCodeDuplicate Code = "DUPLICATE_DEFINITION"
	// ErrCodeUnresolved: a name or index refers to nothing.
	ErrCodeUnresolved Code = "UNRESOLVED_REFERENCE"

	// ErrCodeInternal: an internal consistency check failed.
	ErrCodeInternal Code = "INTERNAL_ERROR"
	// ErrCodeUnsupported: the model uses a feature a writer cannot express.
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded failure with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message" followed by ": cause" when there is one.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message caused by cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as returns the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns err's message without the code prefixes of the
// coded errors in its chain. Context added by fmt.Errorf wrapping is kept.
func UserMessage(err error) string {
	msg := err.Error()
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if e, ok := cur.(*Error); ok {
			msg = strings.Replace(msg, string(e.Code)+": ", "", 1)
		}
	}
	return msg
}

// Warning is a finding that does not abort a stage. Callers collect and
// report warnings themselves.
type Warning struct {
	Code    Code   `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Warnf returns a warning with code and a formatted message.
func Warnf(code Code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// String renders "CODE: message".
func (w Warning) String() string {
	return string(w.Code) + ": " + w.Message
}
