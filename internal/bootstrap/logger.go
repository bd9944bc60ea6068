package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/osse101/Farmstead_Go/internal/config"
	"github.com/osse101/Farmstead_Go/internal/logger"
)

// SetupLogger installs the process logger. Output always goes to stdout; when
// cfg.LogDir is set it is also written to a timestamped file there.
// The returned file is nil without a LogDir; otherwise the caller must close it.
func SetupLogger(cfg *config.Config) (*os.File, error) {
	loggerConfig := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment)

	var out io.Writer = os.Stdout
	var logFile *os.File
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
		}
		cleanupLogs(cfg.LogDir)

		name := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, time.Now().Format(LogFileTimestampFormat)))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}

	logger.InitLoggerWithWriter(loggerConfig, out)

	slog.Info(LogMsgLoggingInitialized, "level", loggerConfig.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStartingFarmstead,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage", cfg.StorageDriver)
	slog.Debug(LogMsgConfigurationLoaded,
		"port", cfg.Port,
		"tick_interval", cfg.TickInterval,
		"autosave_interval", cfg.AutosaveInterval,
		"workers", cfg.WorkerCount,
		"session_cache_size", cfg.SessionCacheSize)

	return logFile, nil
}

// cleanupLogs keeps only the newest LogFileRetentionCount log files so the
// file about to be created brings the total back to the retention limit.
func cleanupLogs(logDir string) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	// ReadDir sorts by name and names embed a sortable timestamp
	var logFiles []os.DirEntry
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), LogFileExtension) {
			logFiles = append(logFiles, entry)
		}
	}

	for i := 0; i < len(logFiles)-LogFileRetentionCount; i++ {
		if err := os.Remove(filepath.Join(logDir, logFiles[i].Name())); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", logFiles[i].Name(), "error", err)
		}
	}
}
