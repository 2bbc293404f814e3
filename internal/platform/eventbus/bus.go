package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

// Bus is an in-process fire-and-forget dispatcher. Handlers run on their
// own goroutines with a context detached from the publisher's cancellation,
// so work triggered by an HTTP request outlives the response.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex
	logger        logger.Logger

	// pending counts running handlers. idle is closed whenever it drops to
	// zero and replaced when work starts again, so Wait may race with
	// Publish freely.
	pendingMu sync.Mutex
	pending   int
	idle      chan struct{}
}

func NewBus(logger logger.Logger) *Bus {
	idle := make(chan struct{})
	close(idle)
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
		idle:          idle,
	}
}

func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish hands the event to every subscriber of its topic and returns
// immediately.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscriptions[event.Topic]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.logger.Debug(ctx, "event has no subscribers", "topic", event.Topic)
		return
	}

	b.pendingMu.Lock()
	if b.pending == 0 {
		b.idle = make(chan struct{})
	}
	b.pending += len(handlers)
	b.pendingMu.Unlock()

	detached := context.WithoutCancel(ctx)
	for _, handler := range handlers {
		go b.dispatch(detached, handler, event)
	}
}

func (b *Bus) dispatch(ctx context.Context, h Handler, event Event) {
	defer b.finish()
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error(ctx, "event handler panicked", "topic", event.Topic, "panic", fmt.Sprint(rec))
		}
	}()

	if err := h(ctx, event); err != nil {
		b.logger.Error(ctx, "event handler failed", "topic", event.Topic, "error", err)
	}
}

func (b *Bus) finish() {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()
	b.pending--
	if b.pending == 0 {
		close(b.idle)
	}
}

// Wait blocks until no handler is running or ctx is done. Events published
// by running handlers are waited for as well.
func (b *Bus) Wait(ctx context.Context) error {
	for {
		b.pendingMu.Lock()
		idle, busy := b.idle, b.pending > 0
		b.pendingMu.Unlock()
		if !busy {
			return nil
		}

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
