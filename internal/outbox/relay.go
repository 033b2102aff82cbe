package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/robfig/cron/v3"
)

const defaultBatchSize = 50

// NewRelay creates a Relay publishing at most one batch per run.
func NewRelay(store Store, publisher Publisher, m metrics.Metrics) *Relay {
	return &Relay{
		store:     store,
		publisher: publisher,
		metrics:   m,
		batchSize: defaultBatchSize,
	}
}

// Run publishes one batch of pending events and returns how many were
// published. Events that fail stay pending and are retried on later runs,
// after events with fewer attempts, until they reach MaxAttempts.
// A run that overlaps another returns immediately.
func (r *Relay) Run(ctx context.Context) (int, error) {
	if !r.running.TryLock() {
		log.Debug("Outbox relay already running, skipping")
		return 0, nil
	}
	defer r.running.Unlock()

	events, err := r.store.FetchPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}
	log.Debug("Relaying outbox events", "count", len(events))

	published, failed := 0, 0
	for _, evt := range events {
		if err := r.publisher.Publish(ctx, string(evt.Type), evt.Payload); err != nil {
			failed++
			r.metrics.IncOutboxFailed()
			log.Error("Failed to publish outbox event", "id", evt.ID, "type", evt.Type, "attempts", evt.Attempts+1, "error", err)
			if markErr := r.store.MarkFailed(ctx, evt.ID, err); markErr != nil {
				return published, markErr
			}
			if evt.Attempts+1 >= MaxAttempts {
				log.Error("Outbox event dead-lettered", "id", evt.ID, "type", evt.Type, "attempts", evt.Attempts+1)
			}
			continue
		}
		if err := r.store.MarkPublished(ctx, evt.ID); err != nil {
			// The event will be published again on the next run.
			return published, err
		}
		published++
		r.metrics.IncOutboxPublished()
	}

	log.Info("Outbox relay finished", "published", published, "failed", failed)
	if failed > 0 {
		return published, fmt.Errorf("%d of %d outbox events failed to publish", failed, len(events))
	}
	return published, nil
}

// Schedule starts a cron scheduler running the relay on schedule. The caller
// stops it on shutdown.
func Schedule(schedule string, relay *Relay) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if _, err := relay.Run(ctx); err != nil {
			log.Error("Scheduled outbox relay failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid outbox schedule %q: %w", schedule, err)
	}
	c.Start()
	log.Info("Outbox relay scheduled", "schedule", schedule)
	return c, nil
}
