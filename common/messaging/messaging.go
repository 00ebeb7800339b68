// Package messaging provides abstractions for message broker communication.
// It defines the small surface the api and relay services need so they are
// not coupled to a specific broker implementation.
package messaging

import (
	"context"
	"time"
)

// Message represents a message delivered from the broker.
type Message struct {
	// Subject is the topic/channel the message was published to.
	Subject string

	// Data is the raw message payload.
	Data []byte

	// ID is the broker-assigned identity of this delivery (stream sequence
	// for JetStream). Empty when the broker provides none.
	ID string

	// Metadata contains optional key-value pairs from message headers.
	Metadata map[string]string

	// Timestamp is when the message was published.
	Timestamp time.Time
}

// MessageHandler processes a delivered message. Returning an error leaves
// the message unacknowledged so the broker redelivers it.
type MessageHandler func(ctx context.Context, msg *Message) error

// HealthChecker can check the health of a messaging connection.
type HealthChecker interface {
	// CheckHealth returns nil if the connection is healthy, error otherwise.
	CheckHealth(ctx context.Context) error
}
