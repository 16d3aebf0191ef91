package neodb

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with neodb-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithDesignation adds a designation field to the logger.
func (l *Logger) WithDesignation(designation string) *Logger {
	return &Logger{
		Logger: l.Logger.With("designation", designation),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogLink logs the outcome of database construction.
func (l *Logger) LogLink(ctx context.Context, stats Stats) {
	l.InfoContext(ctx, "database linked",
		"neos", stats.NEOs,
		"named", stats.Named,
		"approaches", stats.Approaches,
		"linked", stats.Linked,
		"orphans", stats.Orphans,
		"duplicates", stats.Duplicates,
		"strategy", stats.Strategy,
	)
}

// LogDuplicate logs a duplicate NEO designation. The later record wins.
func (l *Logger) LogDuplicate(ctx context.Context, designation string) {
	l.WarnContext(ctx, "duplicate designation, last record wins",
		"designation", designation,
	)
}

// LogOrphans logs approaches whose designation did not resolve to a NEO.
func (l *Logger) LogOrphans(ctx context.Context, orphans int, sample string) {
	if orphans == 0 {
		return
	}
	l.WarnContext(ctx, "close approaches without a matching NEO",
		"orphans", orphans,
		"sample", sample,
	)
}

// LogLookup logs a point lookup.
func (l *Logger) LogLookup(ctx context.Context, kind, key string, found bool) {
	l.DebugContext(ctx, "lookup completed",
		"kind", kind,
		"key", key,
		"found", found,
	)
}

// LogQuery logs a completed query scan.
func (l *Logger) LogQuery(ctx context.Context, filters string, scanned, matched int) {
	l.DebugContext(ctx, "query completed",
		"filters", filters,
		"scanned", scanned,
		"matched", matched,
	)
}
