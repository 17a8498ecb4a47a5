package core

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrInvalidArgumentKind = errors.New("wrappers: invalid argument kind")
	ErrNotInvocable        = errors.New("wrappers: unit is not invocable")
	ErrArgumentMismatch    = errors.New("wrappers: arguments do not match unit signature")
	ErrNilUnit             = errors.New("wrappers: unit cannot be nil")
	ErrInvalidName         = errors.New("wrappers: invalid wrapper name (must be alphanumeric, start with letter)")
	ErrNameTooLong         = errors.New("wrappers: wrapper name too long")
	ErrTooManyArguments    = errors.New("wrappers: too many positional arguments")
)

// InvalidArgumentKindError reports a positional argument whose runtime kind
// violates a validator's constraint.
type InvalidArgumentKindError struct {
	Index int
	Got   string
	Want  string
}

func (e *InvalidArgumentKindError) Error() string {
	return fmt.Sprintf("%v: parameter %d cannot be a %s (want %s)", ErrInvalidArgumentKind, e.Index, e.Got, e.Want)
}

func (e *InvalidArgumentKindError) Unwrap() error {
	return ErrInvalidArgumentKind
}

// InvalidArgumentKind builds an InvalidArgumentKindError.
func InvalidArgumentKind(index int, got, want string) error {
	return &InvalidArgumentKindError{Index: index, Got: got, Want: want}
}

// NotInvocableError is returned when the wrapped value cannot be called.
type NotInvocableError struct {
	Kind string
}

func (e *NotInvocableError) Error() string {
	return fmt.Sprintf("%v: got %s", ErrNotInvocable, e.Kind)
}

func (e *NotInvocableError) Unwrap() error {
	return ErrNotInvocable
}

// IsRejection reports whether err came from argument validation, meaning the
// wrapped unit never ran.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidArgumentKind) || errors.Is(err, ErrTooManyArguments)
}
