package pubsub

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub in projectID.
func New(ctx context.Context, projectID string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{
		client: pubSubC,
		topics: make(map[string]*pubsub.Topic),
	}, nil
}

func (c *client) topic(name string) *pubsub.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.topics[name]
	if !ok {
		t = c.client.Topic(name)
		c.topics[name] = t
	}
	return t
}

// Publish sends payload to topic and waits for the server to acknowledge it.
func (c *client) Publish(ctx context.Context, topic string, payload []byte) error {
	result := c.topic(topic).Publish(ctx, &pubsub.Message{Data: payload})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Debug("Published message", "topic", topic, "serverID", serverID)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (c *client) Close() error {
	c.mu.Lock()
	for _, t := range c.topics {
		t.Stop()
	}
	c.mu.Unlock()
	return c.client.Close()
}

func decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// Payload returns the decoded message data of a push request.
func (r PushRequest) Payload() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Message.Data)
}
