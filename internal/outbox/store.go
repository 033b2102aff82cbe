package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/apperr"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/vmihailenco/msgpack/v5"
)

// NewStore creates a Store on q, which may be the database or an open
// transaction.
func NewStore(q database.Querier) Store {
	return &store{q: q}
}

func (s *store) Insert(ctx context.Context, eventType EventType, data any) (*Event, error) {
	payload, err := msgpack.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	evt := &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.UnixMilli(time.Now().UnixMilli()).UTC(),
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO outbox_events (id, event_type, payload, created_at)
		VALUES (?, ?, ?, ?)
	`, evt.ID, string(evt.Type), evt.Payload, evt.CreatedAt.UnixMilli())
	if err != nil {
		return nil, apperr.Persistence("insert outbox event", err)
	}
	return evt, nil
}

// FetchPending returns up to limit unpublished events that have not used up
// MaxAttempts, least tried first and then oldest first. A failing event
// therefore never holds back events queued behind it.
func (s *store) FetchPending(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, event_type, payload, created_at, attempts
		FROM outbox_events
		WHERE published_at IS NULL AND attempts < ?
		ORDER BY attempts, created_at, rowid
		LIMIT ?
	`, MaxAttempts, limit)
	if err != nil {
		return nil, apperr.Persistence("fetch outbox events", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			e         Event
			eventType string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &eventType, &e.Payload, &createdAt, &e.Attempts); err != nil {
			return nil, apperr.Persistence("scan outbox event", err)
		}
		e.Type = EventType(eventType)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("fetch outbox events", err)
	}
	return events, nil
}

func (s *store) MarkPublished(ctx context.Context, id string) error {
	_, err := s.q.ExecContext(ctx, `
		UPDATE outbox_events SET published_at = ?, attempts = attempts + 1, last_error = NULL
		WHERE id = ?
	`, time.Now().UnixMilli(), id)
	if err != nil {
		return apperr.Persistence("mark outbox event published", err)
	}
	return nil
}

func (s *store) MarkFailed(ctx context.Context, id string, cause error) error {
	_, err := s.q.ExecContext(ctx, `
		UPDATE outbox_events SET attempts = attempts + 1, last_error = ?
		WHERE id = ?
	`, cause.Error(), id)
	if err != nil {
		return apperr.Persistence("mark outbox event failed", err)
	}
	return nil
}
