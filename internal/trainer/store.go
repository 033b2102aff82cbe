package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/database"
)

// New creates a new TrainerStore.
func New(db *sql.DB, users UserDirectory) TrainerStore {
	return &store{
		db:    db,
		q:     db,
		users: users,
	}
}

// InTx returns a TrainerStore whose operations run on tx and never open or
// commit transactions of their own. It has no user directory, so
// CreateTrainer fails on it.
func InTx(tx *sql.Tx) TrainerStore {
	return &store{q: tx}
}

// atomic runs fn in a transaction, or directly on the bound transaction.
func (s *store) atomic(ctx context.Context, fn func(q database.Querier) error) error {
	if s.db == nil {
		return fn(s.q)
	}
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(tx)
	})
}

// CreateTrainer registers a trainer profile for an existing user, optionally
// publishing an initial set of slots.
func (s *store) CreateTrainer(ctx context.Context, nt NewTrainer) (*Trainer, error) {
	if s.users == nil {
		return nil, errors.New("trainer store has no user directory")
	}
	nt.Username = strings.TrimSpace(nt.Username)
	nt.Name = strings.TrimSpace(nt.Name)
	if nt.Username == "" || nt.Name == "" {
		return nil, fmt.Errorf("%w: username and name are required", apperr.ErrValidation)
	}

	exists, err := s.users.Exists(ctx, nt.Username)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %q: %w", nt.Username, apperr.ErrNotFound)
	}

	var created *Trainer
	err = s.atomic(ctx, func(q database.Querier) error {
		id := uuid.NewString()
		res, err := q.ExecContext(ctx, `
			INSERT INTO trainers (id, username, name, specialty, bio, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(username) DO NOTHING
		`, id, nt.Username, nt.Name, nt.Specialty, nt.Bio, time.Now().UnixMilli())
		if err != nil {
			return apperr.Persistence("insert trainer", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return apperr.Persistence("insert trainer", err)
		}
		if affected == 0 {
			return fmt.Errorf("trainer %q: %w", nt.Username, apperr.ErrConflict)
		}

		for _, day := range nt.Availability {
			if err := addSlots(ctx, q, id, day.Date, day.TimeSlots); err != nil {
				return err
			}
		}

		created, err = loadTrainer(ctx, q, nt.Username)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("Created trainer", "username", created.Username, "dates", len(created.Availability))
	return created, nil
}

func (s *store) GetTrainerByUsername(ctx context.Context, username string) (*Trainer, error) {
	return loadTrainer(ctx, s.q, username)
}

// ListTrainers returns all trainers ordered by username.
func (s *store) ListTrainers(ctx context.Context) ([]Trainer, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, username, name, specialty, bio, created_at
		FROM trainers ORDER BY username
	`)
	if err != nil {
		return nil, apperr.Persistence("list trainers", err)
	}

	trainers := []Trainer{}
	for rows.Next() {
		t, err := scanTrainer(rows)
		if err != nil {
			rows.Close()
			return nil, apperr.Persistence("scan trainer", err)
		}
		trainers = append(trainers, *t)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, apperr.Persistence("list trainers", err)
	}

	// Availability is loaded after the rows are closed; a single-connection
	// pool cannot serve a second query while the first is still open.
	for i := range trainers {
		availability, err := loadAvailability(ctx, s.q, trainers[i].ID)
		if err != nil {
			return nil, err
		}
		trainers[i].Availability = availability
	}
	return trainers, nil
}

// AddAvailability publishes slots on a date. Labels already published for
// that date are left untouched.
func (s *store) AddAvailability(ctx context.Context, username string, date time.Time, slots []string) (*Trainer, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: at least one time slot is required", apperr.ErrValidation)
	}

	var updated *Trainer
	err := s.atomic(ctx, func(q database.Querier) error {
		trainerID, err := lookupTrainerID(ctx, q, username)
		if err != nil {
			return err
		}
		if err := addSlots(ctx, q, trainerID, date, slots); err != nil {
			return err
		}
		updated, err = loadTrainer(ctx, q, username)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("Published availability", "trainer", username, "date", FormatDate(date), "slots", slots)
	return updated, nil
}

func (s *store) ReserveSlot(ctx context.Context, username string, date time.Time, slot, requester string) (*Trainer, error) {
	day := FormatDate(date)

	var reserved *Trainer
	err := s.atomic(ctx, func(q database.Querier) error {
		trainerID, err := lookupTrainerID(ctx, q, username)
		if err != nil {
			return err
		}

		var availabilityID int64
		err = q.QueryRowContext(ctx,
			"SELECT id FROM trainer_availability WHERE trainer_id = ? AND date = ?", trainerID, day).
			Scan(&availabilityID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("trainer %q on %s: %w", username, day, apperr.ErrNoAvailability)
			}
			return apperr.Persistence("find availability", err)
		}

		// The is_booked = 0 guard makes this a compare-and-swap: a slot that
		// is missing or already taken affects no rows.
		res, err := q.ExecContext(ctx, `
			UPDATE time_slots SET is_booked = 1, booked_by = ?
			WHERE availability_id = ? AND start_time = ? AND is_booked = 0
		`, requester, availabilityID, slot)
		if err != nil {
			return apperr.Persistence("reserve slot", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return apperr.Persistence("reserve slot", err)
		}
		if affected == 0 {
			return fmt.Errorf("trainer %q on %s at %s: %w", username, day, slot, apperr.ErrSlotUnavailable)
		}

		reserved, err = loadTrainer(ctx, q, username)
		return err
	})
	if err != nil {
		log.Debug("Slot reservation rejected", "trainer", username, "date", day, "slot", slot, "error", err)
		return nil, err
	}

	log.Info("Reserved slot", "trainer", username, "date", day, "slot", slot, "requester", requester)
	return reserved, nil
}

func (s *store) SendMessage(ctx context.Context, senderUsername, trainerUsername, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if senderUsername == "" || content == "" {
		return nil, fmt.Errorf("%w: sender and content are required", apperr.ErrValidation)
	}
	if _, err := lookupTrainerID(ctx, s.q, trainerUsername); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg := &Message{
		ID:              uuid.NewString(),
		SenderUsername:  senderUsername,
		TrainerUsername: trainerUsername,
		Content:         content,
		CreatedAt:       time.UnixMilli(now.UnixMilli()).UTC(),
	}
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO trainer_messages (id, sender_username, trainer_username, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, msg.ID, msg.SenderUsername, msg.TrainerUsername, msg.Content, msg.CreatedAt.UnixMilli())
	if err != nil {
		return nil, apperr.Persistence("insert message", err)
	}

	log.Debug("Stored trainer message", "from", senderUsername, "trainer", trainerUsername)
	return msg, nil
}

// GetMessages returns the conversation between username and a trainer in
// both directions, oldest first.
func (s *store) GetMessages(ctx context.Context, username, trainerUsername string) ([]Message, error) {
	if _, err := lookupTrainerID(ctx, s.q, trainerUsername); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, sender_username, trainer_username, content, created_at
		FROM trainer_messages
		WHERE (sender_username = ? AND trainer_username = ?)
		   OR (sender_username = ? AND trainer_username = ?)
		ORDER BY created_at, rowid
	`, username, trainerUsername, trainerUsername, username)
	if err != nil {
		return nil, apperr.Persistence("query messages", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var m Message
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.SenderUsername, &m.TrainerUsername, &m.Content, &createdAt); err != nil {
			return nil, apperr.Persistence("scan message", err)
		}
		m.CreatedAt = time.UnixMilli(createdAt).UTC()
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("query messages", err)
	}
	return messages, nil
}

func lookupTrainerID(ctx context.Context, q database.Querier, username string) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, "SELECT id FROM trainers WHERE username = ?", username).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("trainer %q: %w", username, apperr.ErrNotFound)
		}
		return "", apperr.Persistence("find trainer", err)
	}
	return id, nil
}

func addSlots(ctx context.Context, q database.Querier, trainerID string, date time.Time, slots []string) error {
	day := FormatDate(date)
	_, err := q.ExecContext(ctx, `
		INSERT INTO trainer_availability (trainer_id, date) VALUES (?, ?)
		ON CONFLICT(trainer_id, date) DO NOTHING
	`, trainerID, day)
	if err != nil {
		return apperr.Persistence("insert availability", err)
	}

	var availabilityID int64
	err = q.QueryRowContext(ctx,
		"SELECT id FROM trainer_availability WHERE trainer_id = ? AND date = ?", trainerID, day).
		Scan(&availabilityID)
	if err != nil {
		return apperr.Persistence("find availability", err)
	}

	for _, label := range slots {
		label = strings.TrimSpace(label)
		if label == "" {
			return fmt.Errorf("%w: empty time slot on %s", apperr.ErrValidation, day)
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO time_slots (availability_id, start_time) VALUES (?, ?)
			ON CONFLICT(availability_id, start_time) DO NOTHING
		`, availabilityID, label)
		if err != nil {
			return apperr.Persistence("insert time slot", err)
		}
	}
	return nil
}

func loadTrainer(ctx context.Context, q database.Querier, username string) (*Trainer, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, username, name, specialty, bio, created_at
		FROM trainers WHERE username = ?
	`, username)
	t, err := scanTrainer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("trainer %q: %w", username, apperr.ErrNotFound)
		}
		return nil, apperr.Persistence("load trainer", err)
	}

	t.Availability, err = loadAvailability(ctx, q, t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// scanTrainer is a helper function to scan a single trainer row.
func scanTrainer(scanner interface{ Scan(...any) error }) (*Trainer, error) {
	var t Trainer
	var createdAt int64
	if err := scanner.Scan(&t.ID, &t.Username, &t.Name, &t.Specialty, &t.Bio, &createdAt); err != nil {
		return nil, err
	}
	t.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &t, nil
}

// loadAvailability returns the trainer's calendar ordered by date and slot label.
func loadAvailability(ctx context.Context, q database.Querier, trainerID string) ([]DateAvailability, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT a.date, s.start_time, s.is_booked, s.booked_by
		FROM trainer_availability a
		LEFT JOIN time_slots s ON s.availability_id = a.id
		WHERE a.trainer_id = ?
		ORDER BY a.date, s.start_time
	`, trainerID)
	if err != nil {
		return nil, apperr.Persistence("load availability", err)
	}
	defer rows.Close()

	availability := []DateAvailability{}
	for rows.Next() {
		var (
			date      string
			startTime sql.NullString
			isBooked  sql.NullBool
			bookedBy  sql.NullString
		)
		if err := rows.Scan(&date, &startTime, &isBooked, &bookedBy); err != nil {
			return nil, apperr.Persistence("scan availability", err)
		}

		if n := len(availability); n == 0 || availability[n-1].Date != date {
			availability = append(availability, DateAvailability{Date: date, TimeSlots: []TimeSlot{}})
		}
		if !startTime.Valid {
			continue
		}
		slot := TimeSlot{StartTime: startTime.String, IsBooked: isBooked.Bool}
		if bookedBy.Valid {
			occupant := bookedBy.String
			slot.BookedBy = &occupant
		}
		day := &availability[len(availability)-1]
		day.TimeSlots = append(day.TimeSlots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("load availability", err)
	}
	return availability, nil
}
