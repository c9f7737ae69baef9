/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the rotation engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env / environment)
  2. Initialize SQLite store
  3. Wire the holiday registry, managers and schedule builder
  4. Configure HTTP router
  5. Start server with graceful shutdown

CONFIGURATION (environment, .env honored):
  PORT       HTTP server port (default: 8080)
  DB_PATH    SQLite database path (default: rotation.db)
             Use ":memory:" for in-memory database
  LOG_LEVEL  logrus level (default: info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  DB_PATH=./data/rotation.db ./server

  # Run with in-memory database
  DB_PATH=":memory:" ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/rotation-engine/api"
	"github.com/warp/rotation-engine/config"
	"github.com/warp/rotation-engine/holiday"
	"github.com/warp/rotation-engine/leave"
	"github.com/warp/rotation-engine/schedule"
	"github.com/warp/rotation-engine/store/sqlite"
	"github.com/warp/rotation-engine/swap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	// Domain wiring. The swap manager doubles as the leave manager's
	// view of approved week changes.
	registry := holiday.NewRegistry(store, log)
	swaps := swap.NewManager(store.Swaps(), store, log)
	leaves := leave.NewManager(store.Leaves(), store, swaps, log)
	builder := schedule.NewBuilder(registry)

	reset := func() error { return store.Reset(context.Background()) }
	handler := api.NewHandler(store, registry, leaves, swaps, builder, log, reset)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
