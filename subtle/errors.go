package subtle

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrInvalidAlphabet     = errors.New("invalid alphabet")
	ErrInvalidOffset       = errors.New("invalid offset")
	ErrKeySpaceTooSmall    = errors.New("key space too small")
	ErrKeySpaceTooLarge    = errors.New("key space too large")
	ErrUnmappableCharacter = errors.New("unmappable character")
	ErrInvalidLength       = errors.New("invalid length")
)

// Error is an input error. Status carries HTTP "bad request" semantics so
// that callers exposing the codec over HTTP can return it unchanged.
type Error struct {
	Kind   error
	Status int
	Msg    string
}

// NewError creates a bad-request error of the given kind.
func NewError(kind error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Status: http.StatusBadRequest,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return e.Msg
}

// Unwrap returns the error kind for errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// StatusCode returns the HTTP-style status code of the error.
func (e *Error) StatusCode() int {
	return e.Status
}
