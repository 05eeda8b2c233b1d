package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/themis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for logging and error reporting configuration
type Logger struct {
	level     string
	format    string
	sentryDSN string
	sentryEnv string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("THEMIS_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console or json)",
			Value:       "console",
			Sources:     cli.EnvVars("THEMIS_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled when empty)",
			Sources:     cli.EnvVars("THEMIS_SENTRY_DSN"),
			Destination: &l.sentryDSN,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment label",
			Sources:     cli.EnvVars("THEMIS_SENTRY_ENV"),
			Destination: &l.sentryEnv,
		},
	}
}

// LogValue renders the configuration for startup logging. The DSN is a
// credential and is reported only as a presence flag.
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.Bool("sentry", l.sentryDSN != ""),
	)
}

// Configure installs the process-wide logger and initializes Sentry when a
// DSN is given. The returned closer flushes Sentry.
func (l *Logger) Configure() (func(), error) {
	var level slog.Level
	switch l.level {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, goerr.New("invalid log level", goerr.V("level", l.level))
	}

	var format logging.Format
	switch l.format {
	case "console", "":
		format = logging.FormatConsole
	case "json":
		format = logging.FormatJSON
	default:
		return nil, goerr.New("invalid log format", goerr.V("format", l.format))
	}

	logging.SetDefault(logging.New(os.Stdout, level, format))

	if l.sentryDSN == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         l.sentryDSN,
		Environment: l.sentryEnv,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
