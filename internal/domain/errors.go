package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: lookup by identifier failed.
	ErrNotFound = errors.New("record not found")
	// ErrNoRooms: the hotel has no available room for a new reservation.
	ErrNoRooms = errors.New("no rooms available")
	// ErrAlreadyCancelled: the reservation was cancelled before.
	ErrAlreadyCancelled = errors.New("reservation already cancelled")
)

// ValidationError marks input that fails a field-level invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferenceError marks a reservation pointing at a hotel or customer that
// does not exist in its owning collection.
type ReferenceError struct {
	Kind string // "hotel" or "customer"
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.ID)
}
