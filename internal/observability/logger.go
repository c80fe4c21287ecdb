package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the structured logger passed through the service.
type Logger struct {
	*slog.Logger
}

func NewLogger(level, env string) *Logger {
	return newLogger(os.Stderr, level, env)
}

func newLogger(w io.Writer, level, env string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var h slog.Handler
	if env == "local" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return &Logger{Logger: slog.New(h).With("service", "wcag-reviewer")}
}

// Nop discards everything. Used by tests and the CLI when quiet.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
