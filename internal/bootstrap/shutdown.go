package bootstrap

import (
	"context"
	"log/slog"
)

type stopper interface {
	Stop()
}

type contextStopper interface {
	Stop(ctx context.Context) error
}

type shutdownable interface {
	Shutdown(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             contextStopper
	Scheduler          stopper
	WorkerPool         stopper
	Sessions           shutdownable
	ResilientPublisher shutdownable
}

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server and streams (no new player actions)
// 2. Clock scheduler (no new ticks or autosaves)
// 3. Worker pool (running ticks and persist jobs finish)
// 4. Sessions (every live and evicted farm is saved)
// 5. Event publisher (pending retries are flushed)
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgStoppingClock)
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	slog.Info(LogMsgSavingSessions)
	if components.Sessions != nil {
		if err := components.Sessions.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSessionShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
