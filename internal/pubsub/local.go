package pubsub

import (
	"context"

	"github.com/charmbracelet/log"
)

// NewLocal returns a client that logs published events instead of sending
// them. Used when GCP_PROJECT is not set.
func NewLocal() PubSubClient {
	return local{}
}

func (local) Publish(_ context.Context, topic string, payload []byte) error {
	log.Info("Pub/Sub disabled, dropping event", "topic", topic, "bytes", len(payload))
	return nil
}

func (local) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (local) Close() error { return nil }
