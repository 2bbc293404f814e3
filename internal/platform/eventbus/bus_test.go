package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger keeps error messages so tests can assert on handler failures.
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *recordingLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *recordingLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *recordingLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *recordingLogger) Error(ctx context.Context, msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *recordingLogger) getErrors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}

func waitFor(t *testing.T, bus *eventbus.Bus) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, bus.Wait(ctx))
}

func TestBusSubscribeAndPublish(t *testing.T) {
	bus := eventbus.NewBus(&recordingLogger{})
	topic := eventbus.Topic("images.deleted")

	var mu sync.Mutex
	var calls []string
	bus.Subscribe(topic, func(ctx context.Context, event eventbus.Event) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "albums:"+event.Payload.(string))
		return nil
	})
	bus.Subscribe(topic, func(ctx context.Context, event eventbus.Event) error {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, "users:"+event.Payload.(string))
		return nil
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: topic, Payload: "img-1"})
	waitFor(t, bus)

	assert.ElementsMatch(t, []string{"albums:img-1", "users:img-1"}, calls)
}

func TestBusPublishWithNoSubscribers(t *testing.T) {
	log := &recordingLogger{}
	bus := eventbus.NewBus(log)

	bus.Publish(context.Background(), eventbus.Event{Topic: "nobody.listens"})
	waitFor(t, bus)

	assert.Empty(t, log.getErrors())
}

func TestBusHandlerErrorIsLogged(t *testing.T) {
	log := &recordingLogger{}
	bus := eventbus.NewBus(log)
	bus.Subscribe("images.uploaded", func(ctx context.Context, event eventbus.Event) error {
		return errors.New("decode failed")
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: "images.uploaded"})
	waitFor(t, bus)

	assert.Equal(t, []string{"event handler failed"}, log.getErrors())
}

func TestBusHandlerPanicIsRecovered(t *testing.T) {
	log := &recordingLogger{}
	bus := eventbus.NewBus(log)
	bus.Subscribe("users.deleted", func(ctx context.Context, event eventbus.Event) error {
		panic("boom")
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: "users.deleted"})
	waitFor(t, bus)

	assert.Equal(t, []string{"event handler panicked"}, log.getErrors())
}

func TestBusHandlersOutliveCancelledPublisher(t *testing.T) {
	bus := eventbus.NewBus(&recordingLogger{})

	var sawCancel atomic.Bool
	release := make(chan struct{})
	bus.Subscribe("images.uploaded", func(ctx context.Context, event eventbus.Event) error {
		<-release
		sawCancel.Store(ctx.Err() != nil)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, eventbus.Event{Topic: "images.uploaded"})
	cancel()
	close(release)
	waitFor(t, bus)

	assert.False(t, sawCancel.Load())
}

func TestBusWaitHonoursContext(t *testing.T) {
	bus := eventbus.NewBus(&recordingLogger{})
	block := make(chan struct{})
	defer close(block)
	bus.Subscribe("slow", func(ctx context.Context, event eventbus.Event) error {
		<-block
		return nil
	})
	bus.Publish(context.Background(), eventbus.Event{Topic: "slow"})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, bus.Wait(ctx), context.DeadlineExceeded)
}

func TestBusConcurrentPublish(t *testing.T) {
	bus := eventbus.NewBus(&recordingLogger{})

	var count atomic.Int64
	bus.Subscribe("tick", func(ctx context.Context, event eventbus.Event) error {
		count.Add(1)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), eventbus.Event{Topic: "tick"})
		}()
	}
	wg.Wait()
	waitFor(t, bus)

	assert.Equal(t, int64(50), count.Load())
}

func TestBusWaitRacesWithPublish(t *testing.T) {
	bus := eventbus.NewBus(&recordingLogger{})
	var count atomic.Int64
	bus.Subscribe("tick", func(ctx context.Context, event eventbus.Event) error {
		count.Add(1)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), eventbus.Event{Topic: "tick"})
		}()
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			assert.NoError(t, bus.Wait(ctx))
		}()
	}
	wg.Wait()
	waitFor(t, bus)

	assert.Equal(t, int64(20), count.Load())
}

func TestBusWaitCoversEventsPublishedByHandlers(t *testing.T) {
	bus := eventbus.NewBus(&recordingLogger{})
	var cascaded atomic.Bool
	bus.Subscribe("images.deleted", func(ctx context.Context, event eventbus.Event) error {
		time.Sleep(10 * time.Millisecond)
		cascaded.Store(true)
		return nil
	})
	bus.Subscribe("users.deleted", func(ctx context.Context, event eventbus.Event) error {
		bus.Publish(ctx, eventbus.Event{Topic: "images.deleted"})
		return nil
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: "users.deleted"})
	waitFor(t, bus)

	assert.True(t, cascaded.Load())
}
