// models/validate.go - Field-level validation errors
package models

import "fmt"

// ValidationError reports a single malformed entity field. Handlers surface
// Field and Reason verbatim so the client can render a message next to the
// offending input.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
