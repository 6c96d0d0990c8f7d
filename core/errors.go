package core

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidID is returned by a DocumentStore when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrAuthFailed is returned when the admin credentials do not match.
	ErrAuthFailed = errors.New("invalid credentials")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	if len(err.Fields) > 0 {
		return fmt.Sprintf("%s: %s", err.Fields[0].Field, err.Fields[0].Error)
	}
	return "validation failed"
}

// StoreUnavailableError wraps a connectivity failure of the backing document store.
type StoreUnavailableError struct {
	Err error
}

func NewStoreUnavailableError(err error) error {
	return &StoreUnavailableError{Err: err}
}

func (err StoreUnavailableError) Error() string {
	return "store unavailable: " + err.Err.Error()
}

func (err StoreUnavailableError) Unwrap() error { return err.Err }

func IsStoreUnavailable(err error) bool {
	var sErr *StoreUnavailableError
	return errors.As(err, &sErr)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
