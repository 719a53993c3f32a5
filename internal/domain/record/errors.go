// Package record defines the error kinds shared by every record collection.
// Domain services return these typed errors and never log; the transport
// layer maps them onto HTTP statuses.
package record

import (
	"errors"
	"fmt"
)

// NotFoundError reports a lookup against an id absent from its collection.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for the given collection kind.
func NotFound(kind string, id int64) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// ValidationError reports an input that violates a data-model invariant.
// It is always returned before any mutation is applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IntegrityError reports a cross-entity constraint that would be violated.
// Count carries the number of records blocking the operation.
type IntegrityError struct {
	Reason string
	Count  int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Reason, e.Count)
}

// InvalidTransitionError reports a state-machine operation attempted from a
// state that does not permit it.
type InvalidTransitionError struct {
	From string
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s request", e.Op, e.From)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsIntegrity(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
