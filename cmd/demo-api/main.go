// demo-api is the sample workload deployed onto provisioned clusters.
// It serves a user CRUD API plus health and metrics endpoints so the
// monitoring stack has something real to scrape and alert on.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackops/stackctl/internal/demoapi"
)

func main() {
	logger := newLogger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("demo-api exited")
	}
}

func run(logger zerolog.Logger) error {
	addr := os.Getenv("DEMO_API_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	var store demoapi.UserStore
	if dsn := os.Getenv("DEMO_API_DSN"); dsn != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		mysqlStore, err := demoapi.OpenMySQL(ctx, dsn)
		if err != nil {
			return err
		}
		defer mysqlStore.Close()

		if err := mysqlStore.Migrate(ctx); err != nil {
			return err
		}
		store = mysqlStore
		logger.Info().Msg("using mysql store")
	} else {
		store = demoapi.NewMemoryStore()
		logger.Info().Msg("no DEMO_API_DSN set, using in-memory store")
	}

	cache := demoapi.NewUserCache(store)
	handler := demoapi.NewHandler(cache, logger)
	srv := &http.Server{
		Addr:              addr,
		Handler:           demoapi.NewRouter(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("demo-api listening")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		hits, misses := cache.Stats()
		logger.Info().
			Str("signal", sig.String()).
			Int64("cache_hits", hits).
			Int64("cache_misses", misses).
			Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// newLogger builds the service logger, honoring LOG_LEVEL when set.
func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "demo-api").
		Logger()

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}
