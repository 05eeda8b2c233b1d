package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

// Format selects the log output format
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

var (
	mu            sync.Mutex
	defaultLogger = New(os.Stdout, slog.LevelInfo, FormatConsole)
)

// Default returns the process-wide logger.
func Default() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// New builds a logger. Console output uses the clog handler for readable
// development logs; JSON output is for log collectors. Fields tagged
// `masq:"secret"` are redacted in both.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	filter := masq.New(masq.WithTag("secret"))

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
		)
	}

	return slog.New(handler)
}

type ctxLoggerKey struct{}

// With stores the logger in the context.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From retrieves the logger from the context, falling back to the default.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
