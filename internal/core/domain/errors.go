package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core wraps exactly one of these so
// the transport layer can map it with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUnavailable        = errors.New("store unavailable")
	ErrTooManyAttempts    = errors.New("too many attempts")
)

var (
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrAccountNotFound  = fmt.Errorf("account %w", ErrNotFound)

	ErrEmailTaken      = fmt.Errorf("%w: email is already in use", ErrConflict)
	ErrUnknownCategory = fmt.Errorf("%w: category_id does not reference an existing category", ErrInvalidInput)

	ErrCategoryInUse = &InvariantError{Reason: "cannot delete: products still use this category"}
	ErrLastCategory  = &InvariantError{Reason: "cannot delete: at least one category must remain"}
	ErrLastProduct   = &InvariantError{Reason: "cannot delete: at least one product must remain"}

	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)

	ErrInvalidToken   = fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	ErrTokenMalformed = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenSignature = fmt.Errorf("%w: signature", ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// InvariantError blocks an otherwise valid mutation because it would break a
// count floor or a referential-restrict rule. Reason is meant for display.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string { return e.Reason }

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }

// InvalidInput builds a field-level validation error.
func InvalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// Unavailable wraps a store failure for the operation op.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
