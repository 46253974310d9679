package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	apihttp "github.com/aretw0/rewind/pkg/adapters/http"
)

// shutdownTimeout bounds graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// RunServe starts the HTTP adapter on addr until SIGINT or SIGTERM.
func RunServe(stack *Stack, addr string) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(sigCtx, stack, ln)
}

// Serve serves the REST API (and /metrics when enabled) on ln until ctx is done.
func Serve(ctx context.Context, stack *Stack, ln net.Listener) error {
	router := apihttp.NewServer(stack.Desk, stack.Engine,
		apihttp.WithLogger(stack.Logger),
		apihttp.WithStreams(stack.Events),
	).Routes()
	if h := stack.MetricsHandler(); h != nil {
		router.Handle(stack.Config.Metrics.Path, h)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Long-lived requests (SSE) end with ctx
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	stack.Logger.Info("Starting HTTP server", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	stack.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
