// Package common holds the error types and logging setup shared by the
// bundle packages and commands.
package common

import (
	"errors"
)

// Sentinel errors checked with errors.Is across package boundaries.
var (
	ErrNoSales       = errors.New("no sales data imported")
	ErrNoValidRows   = errors.New("no valid rows to import")
	ErrMissingConfig = errors.New("configuration not loaded")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError pairs an underlying cause with the sentence shown to the user
// in place of the full error chain.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *UserError) Unwrap() error { return e.Err }

// NewUserError wraps err with a message for the terminal.
func NewUserError(message string, err error) error {
	return &UserError{Message: message, Err: err}
}

// UserMessage extracts the outermost user-facing message from err.
func UserMessage(err error) (string, bool) {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Message, true
	}
	return "", false
}
