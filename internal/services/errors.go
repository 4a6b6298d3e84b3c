// Package services holds the board-scoped mutation logic: membership
// lookups, the destroy cascades, and roster reconciliation. Every
// multi-row write runs inside one gorm transaction so readers never
// observe a half-applied cascade.
package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConsistency signals an invariant break (for example a board left
// without exactly one owner). The surrounding transaction is rolled back;
// this should never surface under correct operation.
var ErrConsistency = errors.New("consistency violation")

// ValidationError rejects a request before any write, keyed by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
