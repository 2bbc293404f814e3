package eventbus

import "context"

// Topic names a stream of events, e.g. "images.deleted".
type Topic string

// Event is a message passed on the bus.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler processes one event. Returned errors are logged by the bus.
type Handler func(ctx context.Context, event Event) error
