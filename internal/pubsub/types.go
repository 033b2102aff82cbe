package pubsub

import (
	"sync"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client

	mu     sync.Mutex
	topics map[string]*pubsub.Topic
}

// local stands in for Pub/Sub when no project is configured.
type local struct{}

// PushRequest is the envelope Pub/Sub push subscriptions POST to us.
type PushRequest struct {
	Message struct {
		Data       string            `json:"data"` // base64
		Attributes map[string]string `json:"attributes,omitempty"`
		ID         string            `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
