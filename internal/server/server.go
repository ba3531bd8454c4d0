// Package server owns the process lifecycle: it connects the backing
// stores, builds the kernel, serves HTTP (and optionally gRPC health) and
// shuts everything down in order on SIGINT or SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/boutique/config"
	"github.com/shashiranjanraj/boutique/internal/kernel"
	"github.com/shashiranjanraj/boutique/pkg/cache"
	"github.com/shashiranjanraj/boutique/pkg/database"
	"github.com/shashiranjanraj/boutique/pkg/grpc"
	"github.com/shashiranjanraj/boutique/pkg/logger"
	"github.com/shashiranjanraj/boutique/pkg/workerpool"
)

const shutdownTimeout = 10 * time.Second

// Boot loads config and connects Mongo. Commands that only need the
// database use it directly.
func Boot(ctx context.Context) (*database.Store, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := database.Connect(connectCtx, config.MongoURI(), config.MongoDB())
	if err != nil {
		return nil, err
	}
	logger.Info("mongo connected", "db", config.MongoDB())
	return store, nil
}

// Start runs until ctx is cancelled or a signal arrives.
func Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := Boot(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Warn("index creation failed", "error", err)
	}

	if config.LogToMongo() {
		sink := logger.NewMongoHandler(store.Collection(database.AppLogs), slog.LevelInfo)
		logger.Tee(sink)
		defer sink.Close()
	}

	var rdb *redis.Client
	if addr := config.RedisAddr(); addr != "" {
		rdb, err = cache.Connect(ctx, addr, config.RedisPassword())
		if err != nil {
			logger.Warn("redis unavailable, using in-process rate limiting and no order locks", "addr", addr, "error", err)
		} else {
			defer rdb.Close()
		}
	}

	pool := workerpool.New(config.WorkerPoolSize(), 0)
	defer pool.Shutdown()

	k := kernel.NewHTTPKernel(kernel.Deps{Store: store, Redis: rdb, Pool: pool})
	defer k.Close()

	if port := config.GRPCPort(); port != "" {
		health := grpc.New(store.Ping, 10*time.Second)
		if err := health.Start(port); err != nil {
			return err
		}
		defer health.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
