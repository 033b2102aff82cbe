package pubsub

import "context"

// PubSubClient publishes encoded events and decodes the ones pushed back to us.
type PubSubClient interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}
