package digo

import (
	"errors"
	"fmt"
)

// ErrAlreadyResolved is returned when Resolve runs twice on the same pipeline value.
var ErrAlreadyResolved = errors.New("registration pipeline already resolved")

// InvalidArgumentError represents a contract violation by the caller:
// a surface that is not an interface, a closed surface passed as an open
// shape, or a missing collaborator.
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Arg, e.Reason)
}

// ConflictingLifetimeError represents a candidate type that declares more than one lifetime.
type ConflictingLifetimeError struct {
	Type      string
	Lifetimes []Lifetime
}

func (e *ConflictingLifetimeError) Error() string {
	return fmt.Sprintf("type %s has multiple lifetime declarations: %v", e.Type, e.Lifetimes)
}

// RegistrationError represents a failure of the target registry to accept a binding.
type RegistrationError struct {
	Type    string
	Surface string
	Err     error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed for type %s as %s: %v", e.Type, e.Surface, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
