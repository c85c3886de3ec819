package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start launches the API and SSE servers and returns a channel that is
// closed once a termination signal arrives.
func (a *App) Start() <-chan struct{} {
	a.listenAndServe("http", a.httpServer)
	a.listenAndServe("sse", a.sseServer)

	done := make(chan struct{})
	go func() {
		defer close(done)

		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigint)

		<-sigint

		if a.cancel != nil {
			a.cancel()
		}
		slog.Info("application gracefully shutdown")
	}()

	return done
}

func (a *App) listenAndServe(name string, srv *http.Server) {
	go func() {
		slog.Info(name+" server listening", "address", srv.Addr)

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve "+name+" server", "error", err)
			os.Exit(1)
		}
	}()
}

// Serve runs the API server on the provided listener for tests.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- a.httpServer.Serve(l)
		close(errChan)
	}()

	return errChan
}

// Stop shuts down both servers, waits for background goroutines, then runs
// the registered closers.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	for name, srv := range map[string]*http.Server{"HTTP Server": a.httpServer, "SSE Server": a.sseServer} {
		if err := srv.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish")
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}
	slog.InfoContext(ctx, "all goroutines have finished successfully")

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
}
