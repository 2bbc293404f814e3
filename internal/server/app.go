package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ravosoft/photohub/backend/internal/platform/eventbus"
	"github.com/ravosoft/photohub/backend/internal/platform/logger"
)

// Bindings marks that event subscribers and ownership checkers are
// registered. NewApp takes it so wire builds the registrations first.
type Bindings struct{}

type App struct {
	server *http.Server
	config Config
	bus    *eventbus.Bus
	log    logger.Logger
}

func NewApp(server *http.Server, config Config, bus *eventbus.Bus, log logger.Logger, _ Bindings) *App {
	return &App{
		server: server,
		config: config,
		bus:    bus,
		log:    log,
	}
}

// Run serves until SIGINT, SIGTERM or ctx cancellation and then returns nil.
// A listener that cannot bind or a server failure is returned as an error.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		a.log.Error(ctx, "failed to bind listener", "addr", a.server.Addr, "error", err)
		return fmt.Errorf("failed to listen on %s: %w", a.server.Addr, err)
	}
	a.log.Info(ctx, "server running", "addr", ln.Addr().String())

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- a.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info(context.Background(), "received shutdown signal, shutting down")
	a.shutdown()
	a.log.Info(context.Background(), "server stopped")
	return nil
}

// shutdown closes immediately when SHUTDOWN_TIMEOUT is zero. Otherwise it
// drains requests and event handlers for at most that long.
func (a *App) shutdown() {
	if a.config.ShutdownTimeout <= 0 {
		_ = a.server.Close()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Warn(ctx, "graceful shutdown incomplete", "error", err)
		_ = a.server.Close()
	}
	if err := a.bus.Wait(ctx); err != nil {
		a.log.Warn(ctx, "event handlers still running at shutdown", "error", err)
	}
}
