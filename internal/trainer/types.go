package trainer

import (
	"database/sql"
	"time"

	"github.com/mauv0809/courtside/internal/database"
)

// store handles all database operations for trainers. db is nil when the
// store is bound to a caller's transaction.
type store struct {
	db    *sql.DB
	q     database.Querier
	users UserDirectory
}

// Trainer is a club trainer with the calendar of slots they offer.
type Trainer struct {
	ID           string             `json:"id"`
	Username     string             `json:"username"`
	Name         string             `json:"name"`
	Specialty    string             `json:"specialty"`
	Bio          string             `json:"bio"`
	CreatedAt    time.Time          `json:"createdAt"`
	Availability []DateAvailability `json:"availability"`
}

// DateAvailability holds the slots offered on one calendar date.
type DateAvailability struct {
	Date      string     `json:"date"` // YYYY-MM-DD
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// TimeSlot is a bookable unit identified by its start time label.
// BookedBy is set if and only if IsBooked is true.
type TimeSlot struct {
	StartTime string  `json:"startTime"`
	IsBooked  bool    `json:"isBooked"`
	BookedBy  *string `json:"bookedBy,omitempty"`
}

// NewTrainer is the input for CreateTrainer.
type NewTrainer struct {
	Username     string
	Name         string
	Specialty    string
	Bio          string
	Availability []SlotsForDate
}

// SlotsForDate lists slot labels to publish on a date.
type SlotsForDate struct {
	Date      time.Time
	TimeSlots []string
}

// Message is a note sent between a member and a trainer.
type Message struct {
	ID              string    `json:"id"`
	SenderUsername  string    `json:"senderUsername"`
	TrainerUsername string    `json:"trainerUsername"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Slot returns the slot with the given label on date, if published.
func (t *Trainer) Slot(date, label string) (TimeSlot, bool) {
	for _, day := range t.Availability {
		if day.Date != date {
			continue
		}
		for _, slot := range day.TimeSlots {
			if slot.StartTime == label {
				return slot, true
			}
		}
	}
	return TimeSlot{}, false
}
