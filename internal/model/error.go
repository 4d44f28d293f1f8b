package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")

	ErrComponentNotFound = fmt.Errorf("component %w", ErrNotFound)
	ErrPcbNotFound       = fmt.Errorf("pcb %w", ErrNotFound)
	ErrClientNotFound    = fmt.Errorf("client %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("order %w", ErrNotFound)
	ErrOrderItemNotFound = fmt.Errorf("order item %w", ErrNotFound)
	ErrBomLineNotFound   = fmt.Errorf("bom line %w", ErrNotFound)
	ErrEmployeeNotFound  = fmt.Errorf("employee %w", ErrNotFound)

	// ErrNotFound is the base of every per-entity not-found error above.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock matches any *InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidState covers mutations the current state forbids: editing a
	// terminal order's cart, a client whose detail record mismatches its type.
	ErrInvalidState = errors.New("invalid state")

	// ErrStorageConflict is a serialization/deadlock failure of the store.
	// The operation left no effects; the caller may retry it.
	ErrStorageConflict = errors.New("storage conflict, retry")

	// ErrInvalidCredentials hides whether the login or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InsufficientStockError reports which entity ran short and by how much.
type InsufficientStockError struct {
	Entity  string
	Deficit int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %q, deficit %d", e.Entity, e.Deficit)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewInsufficientStock builds the error for a shortfall of deficit units.
func NewInsufficientStock(entity string, deficit int64) error {
	return &InsufficientStockError{Entity: entity, Deficit: deficit}
}
