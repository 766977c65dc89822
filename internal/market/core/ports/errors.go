package ports

import (
	"errors"
	"fmt"
)

// Sentinel errors shared between the services and their adapters. Handlers
// translate these at the boundary; nothing propagates past it unhandled.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrActorNotFound     = errors.New("actor not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrInvalidSupplier   = errors.New("invalid supplier")
	ErrNoSuppliers       = errors.New("no suppliers available")
	ErrStatusConflict    = errors.New("illegal status transition")
	ErrRevisionConflict  = errors.New("order was modified concurrently")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
)

// ValidationError reports a malformed or missing input field with enough
// detail for the client to point at the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for a field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
