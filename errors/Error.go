package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a coded error. Two errors are considered the same by Is when their
// codes match anywhere along the wrap chain, so callers test against the
// sentinels in Error_types.go rather than comparing messages.
type Error struct {
	code       ERR
	message    string
	wrappedErr error
	data       ErrData
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Error: %s (error code: %d), Message: %v", e.code.Enum(), e.code, e.message)

	if e.wrappedErr != nil {
		fmt.Fprintf(&sb, ", Wrapped err: %v", e.wrappedErr)
	}

	if len(e.data) > 0 {
		fmt.Fprintf(&sb, ", Data: %s", e.data)
	}

	return sb.String()
}

// Is reports whether target is an *Error carrying the same code as e or as any
// *Error wrapped beneath it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if e == nil || !ok || t == nil {
		return false
	}

	for err := error(e); err != nil; err = errors.Unwrap(err) {
		if c, ok := err.(*Error); ok && c != nil && c.code == t.code {
			return true
		}
	}

	return false
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.wrappedErr
}

func (e *Error) Code() ERR {
	if e == nil {
		return ERR_UNKNOWN
	}

	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

// WithData attaches a key/value pair, typically the offending size and the
// limit it broke, and returns e for chaining.
func (e *Error) WithData(key string, value interface{}) *Error {
	if e.data == nil {
		e.data = ErrData{}
	}

	e.data[key] = value

	return e
}

func (e *Error) GetData(key string) interface{} {
	if e == nil {
		return nil
	}

	return e.data[key]
}

// New creates an *Error. The message is formatted with params, except that a
// trailing error is taken as the wrapped cause instead.
func New(code ERR, message string, params ...interface{}) *Error {
	e := &Error{code: code}

	if n := len(params); n > 0 {
		if cause, ok := params[n-1].(error); ok {
			e.wrappedErr = cause
			params = params[:n-1]
		}
	}

	switch {
	case !code.valid():
		e.message = "invalid error code"
	case len(params) > 0:
		e.message = fmt.Sprintf(message, params...)
	default:
		e.message = message
	}

	return e
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
