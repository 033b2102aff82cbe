package booking

import "context"

// Service books trainer slots and answers booking queries.
type Service interface {
	// BookTrainer reserves slot on date for requester and records a pending
	// booking. date is YYYY-MM-DD or an RFC 3339 timestamp; only its UTC
	// calendar date is used.
	BookTrainer(ctx context.Context, requester, trainerUsername, date, slot string) (*Booking, error)
	ListBookingsForUser(ctx context.Context, username string) ([]BookingWithTrainer, error)
}
