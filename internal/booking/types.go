package booking

import (
	"database/sql"
	"time"

	"github.com/mauv0809/courtside/internal/metrics"
)

// Status is the lifecycle state of a booking. Every booking starts pending;
// nothing moves it out of that state yet.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Coordinator turns a slot reservation into a booking. The reservation, the
// booking row and its outbox event commit together or not at all.
type Coordinator struct {
	db      *sql.DB
	metrics metrics.Metrics
}

type Booking struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	TrainerID string    `json:"trainerId"`
	Date      time.Time `json:"date"`
	TimeSlot  string    `json:"timeSlot"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrainerSummary is the slice of a trainer shown next to a booking.
type TrainerSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// BookingWithTrainer is a booking annotated with its trainer.
type BookingWithTrainer struct {
	Booking
	Trainer TrainerSummary `json:"trainer"`
}

// BookingCreated is the outbox event written with every new booking.
type BookingCreated struct {
	BookingID       string    `msgpack:"booking_id"`
	Username        string    `msgpack:"username"`
	TrainerUsername string    `msgpack:"trainer_username"`
	TrainerName     string    `msgpack:"trainer_name"`
	Date            string    `msgpack:"date"`
	TimeSlot        string    `msgpack:"time_slot"`
	CreatedAt       time.Time `msgpack:"created_at"`
}
