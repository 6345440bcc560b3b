package ot

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for inputs that do not fit the
	// operation, e.g. a document whose length differs from the base length.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformed is returned when an operation's primitives disagree with its
	// recorded lengths, or two operations cannot be paired up. It indicates a
	// bug, not a user error.
	ErrMalformed = errors.New("malformed operation")
)

// Error is the error type returned by this package.
type Error struct {
	Op      string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ot: %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("ot: %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(op, message string, cause error) error {
	return &Error{Op: op, Message: message, Cause: cause}
}
