package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/outbox"
	"github.com/mauv0809/courtside/internal/trainer"
)

// NewCoordinator creates a booking Coordinator.
func NewCoordinator(db *sql.DB, m metrics.Metrics) *Coordinator {
	return &Coordinator{
		db:      db,
		metrics: m,
	}
}

func (c *Coordinator) BookTrainer(ctx context.Context, requester, trainerUsername, date, slot string) (booking *Booking, err error) {
	start := time.Now()
	c.metrics.IncBookingAttempts()
	defer func() {
		c.metrics.ObserveBookingDuration(time.Since(start).Seconds())
		if err != nil {
			c.metrics.IncBookingFailures(apperr.Code(err))
			return
		}
		c.metrics.IncBookingsCreated()
	}()

	requester = strings.TrimSpace(requester)
	trainerUsername = strings.TrimSpace(trainerUsername)
	slot = strings.TrimSpace(slot)
	if requester == "" || trainerUsername == "" || slot == "" {
		return nil, fmt.Errorf("%w: username, trainerUsername and timeSlot are required", apperr.ErrValidation)
	}
	day, err := trainer.ParseDate(date)
	if err != nil {
		return nil, err
	}

	err = database.WithTx(ctx, c.db, func(tx *sql.Tx) error {
		reserved, err := trainer.InTx(tx).ReserveSlot(ctx, trainerUsername, day, slot, requester)
		if err != nil {
			return err
		}

		now := time.UnixMilli(time.Now().UnixMilli()).UTC()
		booking = &Booking{
			ID:        uuid.NewString(),
			Username:  requester,
			TrainerID: reserved.ID,
			Date:      day,
			TimeSlot:  slot,
			Status:    StatusPending,
			CreatedAt: now,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO bookings (id, username, trainer_id, date, time_slot, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, booking.ID, booking.Username, booking.TrainerID, trainer.FormatDate(day), booking.TimeSlot,
			string(booking.Status), booking.CreatedAt.UnixMilli())
		if err != nil {
			return apperr.Persistence("insert booking", err)
		}

		_, err = outbox.NewStore(tx).Insert(ctx, outbox.EventBookingCreated, BookingCreated{
			BookingID:       booking.ID,
			Username:        booking.Username,
			TrainerUsername: reserved.Username,
			TrainerName:     reserved.Name,
			Date:            trainer.FormatDate(day),
			TimeSlot:        booking.TimeSlot,
			CreatedAt:       booking.CreatedAt,
		})
		return err
	})
	if err != nil {
		log.FromContext(ctx).Warn("Booking failed", "username", requester, "trainer", trainerUsername, "date", date, "slot", slot, "code", apperr.Code(err), "error", err)
		return nil, err
	}

	log.FromContext(ctx).Info("Booking created", "id", booking.ID, "username", requester, "trainer", trainerUsername, "date", trainer.FormatDate(day), "slot", slot)
	return booking, nil
}

// ListBookingsForUser returns every booking made by username, ordered by date
// and slot. Unknown users simply have no bookings.
func (c *Coordinator) ListBookingsForUser(ctx context.Context, username string) ([]BookingWithTrainer, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT b.id, b.username, b.trainer_id, b.date, b.time_slot, b.status, b.created_at,
		       t.username, t.name, t.specialty
		FROM bookings b
		JOIN trainers t ON t.id = b.trainer_id
		WHERE b.username = ?
		ORDER BY b.date, b.time_slot
	`, username)
	if err != nil {
		return nil, apperr.Persistence("list bookings", err)
	}
	defer rows.Close()

	bookings := []BookingWithTrainer{}
	for rows.Next() {
		var (
			b         BookingWithTrainer
			date      string
			status    string
			createdAt int64
		)
		err := rows.Scan(&b.ID, &b.Username, &b.TrainerID, &date, &b.TimeSlot, &status, &createdAt,
			&b.Trainer.Username, &b.Trainer.Name, &b.Trainer.Specialty)
		if err != nil {
			return nil, apperr.Persistence("scan booking", err)
		}
		b.Date, err = time.Parse(trainer.DateLayout, date)
		if err != nil {
			return nil, apperr.Persistence("parse booking date", err)
		}
		b.Status = Status(status)
		b.CreatedAt = time.UnixMilli(createdAt).UTC()
		b.Trainer.ID = b.TrainerID
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("list bookings", err)
	}
	return bookings, nil
}
