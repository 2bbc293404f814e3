package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(addr string, shutdown time.Duration) *App {
	srv := &http.Server{Addr: addr, Handler: http.NotFoundHandler()}
	return NewApp(srv, Config{ShutdownTimeout: shutdown}, eventbus.NewBus(logger.Nop{}), logger.Nop{}, Bindings{})
}

func TestApp_RunReturnsNilOnShutdown(t *testing.T) {
	for _, timeout := range []time.Duration{0, time.Second} {
		t.Run(timeout.String(), func(t *testing.T) {
			app := newTestApp("127.0.0.1:0", timeout)
			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan error, 1)
			go func() { done <- app.Run(ctx) }()

			time.Sleep(50 * time.Millisecond)
			cancel()

			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("Run did not return after cancellation")
			}
		})
	}
}

func TestApp_RunFailsWhenPortIsTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	app := newTestApp(ln.Addr().String(), 0)
	err = app.Run(context.Background())
	assert.Error(t, err)
}
