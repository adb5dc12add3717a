package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"go-carwash-inventory/pkg/validator"
)

// Sentinel errors - use with errors.Is()
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidState is returned when an entity is not in the status the
	// requested transition requires (e.g. deciding a non-pending requisition).
	ErrInvalidState = errors.New("invalid state for requested transition")

	// ErrInvalidAction is returned for an unrecognized transition action.
	ErrInvalidAction = errors.New("unrecognized action")

	// ErrInsufficientStock is returned when a deduction would drive stock
	// negative. The check happens before any write.
	ErrInsufficientStock = errors.New("insufficient stock remaining")

	// ErrEmptyItems is returned when an operation requires a non-empty items list.
	ErrEmptyItems = errors.New("items list must not be empty")

	// ErrForbidden is returned when the acting user lacks the role or
	// privilege an operation requires.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is the base of all input validation failures.
	ErrValidation = errors.New("validation failed")
)

// InsufficientStockError carries the shortage details.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// InvalidStateError reports the status that blocked a transition.
type InvalidStateError struct {
	Entity  string
	Current string
	Wanted  string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s is %s, expected %s", e.Entity, e.Current, e.Wanted)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ValidationError reports the first failing field of a request struct.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", e.Field, e.Tag)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// validateStruct runs struct tag validation and converts the first failure
// into a ValidationError.
func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Field: errs[0].FailedField, Tag: errs[0].Tag}
	}
	return nil
}
