// Package pubsub fans typed events out to any number of subscribers and
// bridges those subscriptions into the Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	AddedEvent   EventType = "added"
	RemovedEvent EventType = "removed"
	UpdatedEvent EventType = "updated"
	LoggedEvent  EventType = "logged"
)

// Event is a single published occurrence with its payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events for fan-out.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
