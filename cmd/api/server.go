// cmd/api/server.go
// This file contains the serve() method which starts the HTTP server and
// drains it when the process is asked to stop.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// shutdownPeriod is how long in-flight requests get after SIGINT or SIGTERM.
const shutdownPeriod = 20 * time.Second

// serve runs the catalog server until SIGINT or SIGTERM, then stops accepting
// connections and waits up to shutdownPeriod for active requests.
func (app *applicationDependencies) serve() error {
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server",
			"address", apiServer.Addr,
			"environment", app.config.environment,
			"version", appVersion,
			"store", app.config.store.Driver,
		)
		listenErr <- apiServer.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		// The listener failed before any signal, e.g. the port is taken.
		return err
	case <-ctx.Done():
	}
	stop()
	app.logger.Info("shutting down server", "grace", shutdownPeriod)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-listenErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	app.logger.Info("server stopped", "address", apiServer.Addr)
	return nil
}
