package logger

import (
	"cmp"
	"io"
	"log/slog"
	"strings"
)

// Config describes the process logger
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a Config, filling blanks with the defaults for environment.
// Development logs carry source locations; production logs are JSON.
func NewConfig(level, format, serviceName, version, environment string) Config {
	base := ConfigFor(environment)
	return Config{
		Level:       cmp.Or(level, base.Level),
		Format:      cmp.Or(format, base.Format),
		ServiceName: cmp.Or(serviceName, base.ServiceName),
		Version:     cmp.Or(version, base.Version),
		Environment: base.Environment,
		AddSource:   base.AddSource,
	}
}

// ConfigFor returns the defaults for an environment. Unknown or empty
// environments get the development defaults.
func ConfigFor(environment string) Config {
	switch strings.ToLower(environment) {
	case EnvironmentProduction, "production":
		return Config{
			Level:       LogLevelInfo,
			Format:      LogFormatJSON,
			ServiceName: DefaultServiceName,
			Version:     ProductionVersion,
			Environment: EnvironmentProduction,
		}
	default:
		return Config{
			Level:       LogLevelDebug,
			Format:      LogFormatText,
			ServiceName: DefaultServiceName,
			Version:     DefaultVersion,
			Environment: cmp.Or(strings.ToLower(environment), EnvironmentDev),
			AddSource:   true,
		}
	}
}

// LogLevel maps Level onto slog, defaulting to info
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) handler(opts *slog.HandlerOptions, w io.Writer) slog.Handler {
	if strings.EqualFold(c.Format, LogFormatJSON) {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func (c Config) attrs() []any {
	return []any{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
