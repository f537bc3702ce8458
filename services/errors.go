package services

import (
	"fmt"
)

// Typed errors the service layer returns. Controllers map these to HTTP
// statuses; callers that need the details (requested vs available, the edge
// that closed a cycle) read the struct fields via errors.As.

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// CircularRecipeError reports an ingredient edge that would close (or, at
// resolution time, did close) a cycle in the recipe graph.
type CircularRecipeError struct {
	ParentItemID uint
	ChildItemID  uint
}

func (e *CircularRecipeError) Error() string {
	return fmt.Sprintf("circular recipe: item %d -> item %d", e.ParentItemID, e.ChildItemID)
}

type InsufficientStockError struct {
	ItemID    uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}

// ConcurrentModificationError is surfaced after the bounded retry budget for
// lock contention is exhausted. Transient; the caller may retry.
type ConcurrentModificationError struct {
	Attempts int
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("concurrent modification: gave up after %d attempts", e.Attempts)
}

// InvariantViolation marks persisted data the engine refuses to work with
// (e.g. an item row with no usable price). Fatal for the operation, never
// silently defaulted.
type InvariantViolation struct {
	Entity string
	ID     uint
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation on %s %d: %s", e.Entity, e.ID, e.Reason)
}
