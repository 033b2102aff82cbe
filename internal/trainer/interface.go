package trainer

import (
	"context"
	"time"
)

// TrainerStore owns trainer profiles, their published availability and the
// messages members send them. It is the only writer of time slots.
type TrainerStore interface {
	CreateTrainer(ctx context.Context, t NewTrainer) (*Trainer, error)
	GetTrainerByUsername(ctx context.Context, username string) (*Trainer, error)
	ListTrainers(ctx context.Context) ([]Trainer, error)
	AddAvailability(ctx context.Context, username string, date time.Time, slots []string) (*Trainer, error)
	// ReserveSlot marks a free slot as booked by requester. The slot flips
	// with a single conditional update, so of several concurrent calls for
	// the same slot exactly one succeeds.
	ReserveSlot(ctx context.Context, username string, date time.Time, slot, requester string) (*Trainer, error)
	SendMessage(ctx context.Context, senderUsername, trainerUsername, content string) (*Message, error)
	GetMessages(ctx context.Context, username, trainerUsername string) ([]Message, error)
}

// UserDirectory is the part of the user store needed to create trainers.
type UserDirectory interface {
	Exists(ctx context.Context, username string) (bool, error)
}
