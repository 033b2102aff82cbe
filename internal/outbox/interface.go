package outbox

import "context"

// Store persists events that must reach the message bus. Insert is meant to
// run inside the same transaction as the state change the event describes.
type Store interface {
	Insert(ctx context.Context, eventType EventType, data any) (*Event, error)
	FetchPending(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, cause error) error
}

// Publisher delivers an encoded event to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
