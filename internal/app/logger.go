package app

import (
	"context"
	"io"
	"log/slog"
)

// newLogger builds the application logger: untimestamped entries on the
// console and timestamped entries appended to the persistent log file. It
// never touches the global default logger, so tests can capture output with
// their own sinks.
func newLogger(levelStr, formatStr string, console, logFile io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	consoleOpts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// The console mirrors the file minus timestamps.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}

	var consoleHandler slog.Handler
	if formatStr == "json" {
		consoleHandler = slog.NewJSONHandler(console, consoleOpts)
	} else {
		consoleHandler = slog.NewTextHandler(console, consoleOpts)
	}

	fileHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})

	return slog.New(multiHandler{consoleHandler, fileHandler})
}

// multiHandler fans every record out to each wrapped handler.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithGroup(name)
	}
	return next
}
