// Package apperr defines the typed errors that leave the engine: field
// validation failures and calculation domain failures.
package apperr

import (
	"fmt"
	"strings"

	"vat-engine/internal/model"
	"vat-engine/internal/result"
)

// DomainError is a calculation failure. It is only built from a failed
// Outcome.
type DomainError struct {
	Message string
	Errors  []string
}

func (e *DomainError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Errors, "; "))
}

// FromOutcome returns nil for a successful outcome and a *DomainError
// carrying the failure message and sub-errors otherwise.
func FromOutcome[T any](o result.Outcome[T]) *DomainError {
	if o.IsSuccess() {
		return nil
	}
	return &DomainError{Message: o.Message(), Errors: o.Errors()}
}

// ValidationError carries the diagnostics of a rejected request.
type ValidationError struct {
	Diagnostics *model.FieldDiagnostics
}

// NewValidationError builds a ValidationError with a single message.
func NewValidationError(field, message string) *ValidationError {
	d := model.NewFieldDiagnostics()
	d.Add(field, message)
	return &ValidationError{Diagnostics: d}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, e.Diagnostics.Len())
	for _, f := range e.Diagnostics.Fields() {
		name := f
		if name == "" {
			name = "request"
		}
		parts = append(parts, name+": "+strings.Join(e.Diagnostics.Messages(f), ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
