package logger

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	farmIDKey    ctxKey = "farmID"
)

// InitLoggerWithWriter installs the process-wide slog logger writing to w
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	slog.SetDefault(slog.New(cfg.handler(opts, w)).With(cfg.attrs()...))
}

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID stored in ctx, or "" when absent.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithFarmID tags the context with the farm session being worked on.
func WithFarmID(ctx context.Context, farmID string) context.Context {
	return context.WithValue(ctx, farmIDKey, farmID)
}

// FromContext returns a logger that includes request_id and farm_id when present.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if ctx == nil {
		return log
	}
	if id := GetRequestID(ctx); id != "" {
		log = log.With(AttrKeyRequestID, id)
	}
	if id, ok := ctx.Value(farmIDKey).(string); ok && id != "" {
		log = log.With(AttrKeyFarmID, id)
	}
	return log
}

// Debug logs at debug level on the default logger
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
