package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for create request validation.
var (
	ErrNameRequired        = errors.New("workflow name is required")
	ErrDescriptionRequired = errors.New("workflow description is required")
)

// NotFoundError indicates that no workflow with the given id exists, either
// in the local view or on the server.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("workflow not found: id=%q", e.ID)
}

// InvalidPriorityError indicates a priority outside low, medium and high.
type InvalidPriorityError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority %q: must be low, medium or high", e.Value)
}
