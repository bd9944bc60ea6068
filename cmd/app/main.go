package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/Farmstead_Go/internal/bootstrap"
	"github.com/osse101/Farmstead_Go/internal/config"
	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/farm"
	"github.com/osse101/Farmstead_Go/internal/scheduler"
	"github.com/osse101/Farmstead_Go/internal/server"
	"github.com/osse101/Farmstead_Go/internal/session"
	"github.com/osse101/Farmstead_Go/internal/sse"
	"github.com/osse101/Farmstead_Go/internal/worker"
)

// Jobs queued per worker before the scheduler starts skipping intervals
const queuePerWorker = 16

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.CheckEnv()
	if err != nil {
		slog.Error("Environment check failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Farmstead exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: eventBus,
		Hub:      hub,
	}); err != nil {
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerCount*queuePerWorker)
	pool.Start()

	engine := farm.NewEngine(cat, cfg.TickInterval)
	sessions := session.NewService(engine, storage.Farms, publisher, pool, session.Config{
		CacheSize:         cfg.SessionCacheSize,
		IdleTTL:           cfg.SessionIdleTTL,
		DefaultDifficulty: domain.Difficulty(cfg.DefaultDifficulty),
	})

	clock := scheduler.New(pool)
	clock.Schedule(cfg.TickInterval, worker.NewTickJob(sessions))
	clock.Schedule(cfg.AutosaveInterval, worker.NewAutosaveJob(sessions, cfg.AutosaveInterval))

	srv := server.NewServer(server.Options{
		Port:             cfg.Port,
		APIKey:           cfg.APIKey,
		TrustedProxies:   cfg.TrustedProxies,
		RequestSizeLimit: cfg.RequestSizeLimit,
	}, storage.Farms, sessions, cat, hub)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case runErr = <-serverErr:
		slog.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          clock,
		WorkerPool:         pool,
		Sessions:           sessions,
		ResilientPublisher: publisher,
	})
	return runErr
}
