package outbox

import (
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/metrics"
)

// EventType names an event and doubles as the topic it is published to.
type EventType string

const (
	EventBookingCreated EventType = "booking-created"
	EventMatchUpdated   EventType = "match-updated"
)

// MaxAttempts is how often an event is tried before it is left in the table
// as a dead letter, with last_error holding the final failure.
const MaxAttempts = 10

// Event is a stored, msgpack-encoded event.
type Event struct {
	ID        string
	Type      EventType
	Payload   []byte
	CreatedAt time.Time
	Attempts  int
}

type store struct {
	q database.Querier
}

// Relay moves pending events from the Store to a Publisher.
type Relay struct {
	store     Store
	publisher Publisher
	metrics   metrics.Metrics
	batchSize int

	// running guards against overlapping runs from cron and manual triggers.
	running sync.Mutex
}
