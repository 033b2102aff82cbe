// Package apperr defines the error kinds shared by the stores and services.
// Callers match them with errors.Is; only the HTTP layer turns them into
// user-facing text.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNoAvailability  = errors.New("no availability for selected date")
	ErrSlotUnavailable = errors.New("time slot not available")
	ErrMatchFull       = errors.New("match is full")
	ErrConflict        = errors.New("already exists")
	ErrValidation      = errors.New("invalid request")
	ErrPersistence     = errors.New("persistence failure")
)

// Persistence wraps a storage error so that it matches both ErrPersistence and cause.
func Persistence(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, cause)
}

// Code returns a stable machine-readable code for err.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoAvailability):
		return "no_availability"
	case errors.Is(err, ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, ErrMatchFull):
		return "match_full"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}
