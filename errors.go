package goanf

import (
	"errors"
	"fmt"
)

// Core error classes.
// These errors can be wrapped with additional context using fmt.Errorf.
var (
	// ErrPreconditionViolation indicates a caller error, such as dividing by
	// the zero monomial or passing a polynomial where a monomial is required.
	// Operations that detect it panic with an error wrapping this value.
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrInvariantViolation indicates internal corruption, such as a cached
	// degree exceeding an asserted bound. Operations that detect it panic
	// with an error wrapping this value.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrInvalidNode indicates a node ID does not identify an internal node
	// of the forest.
	ErrInvalidNode = errors.New("invalid node")

	// ErrIncomplete indicates a Gröbner basis computation stopped because its
	// iteration budget ran out before the pair queue emptied.
	ErrIncomplete = errors.New("incomplete basis")
)

// precondition panics with an ErrPreconditionViolation carrying msg.
func precondition(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrPreconditionViolation, fmt.Sprintf(format, args...)))
}

// invariant panics with an ErrInvariantViolation carrying msg.
func invariant(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...)))
}
