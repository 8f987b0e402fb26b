package vecfuzz

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// Logger wraps slog.Logger with vecfuzz-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger

	// decodeWarn throttles per-row decode warnings. Shared by loggers
	// derived through With* so a single batch cannot flood the handler.
	decodeWarn *rate.Sometimes
}

// DecodeWarnInterval is the minimum spacing of decode-error warnings.
const DecodeWarnInterval = time.Second

func newLogger(l *slog.Logger) *Logger {
	return &Logger{
		Logger:     l,
		decodeWarn: &rate.Sometimes{First: 1, Interval: DecodeWarnInterval},
	}
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return newLogger(slog.New(handler))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return newLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return newLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return newLogger(slog.New(slog.DiscardHandler))
}

// WithBatch adds a batch size field to the logger.
func (l *Logger) WithBatch(rows int) *Logger {
	return &Logger{
		Logger:     l.Logger.With("rows", rows),
		decodeWarn: l.decodeWarn,
	}
}

// WithFuncs adds the requested function names to the logger.
func (l *Logger) WithFuncs(fns []Func) *Logger {
	names := make([]string, len(fns))
	for i, fn := range fns {
		names[i] = fn.String()
	}
	return &Logger{
		Logger:     l.Logger.With("funcs", names),
		decodeWarn: l.decodeWarn,
	}
}

// LogBatch logs a completed or failed batch.
func (l *Logger) LogBatch(ctx context.Context, rows, nulls, decodeErrors int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch failed",
			"rows", rows,
			"error", err,
		)
		return
	}
	if decodeErrors > 0 {
		l.WarnContext(ctx, "batch completed with undecodable rows",
			"rows", rows,
			"nulls", nulls,
			"decode_errors", decodeErrors,
			"elapsed", elapsed,
		)
		return
	}
	l.DebugContext(ctx, "batch completed",
		"rows", rows,
		"nulls", nulls,
		"elapsed", elapsed,
	)
}

// LogChunk logs a scored chunk. busy is the number of chunks in flight
// on the engine when it finished.
func (l *Logger) LogChunk(ctx context.Context, start, end, busy int, elapsed time.Duration) {
	l.DebugContext(ctx, "chunk scored",
		"start", start,
		"end", end,
		"busy_workers", busy,
		"elapsed", elapsed,
	)
}

// LogDecodeError logs an undecodable cell. At most one warning is
// emitted per DecodeWarnInterval; the rest are dropped.
func (l *Logger) LogDecodeError(ctx context.Context, err *DecodeError) {
	if l.decodeWarn == nil {
		l.logDecodeError(ctx, err)
		return
	}
	l.decodeWarn.Do(func() {
		l.logDecodeError(ctx, err)
	})
}

func (l *Logger) logDecodeError(ctx context.Context, err *DecodeError) {
	l.WarnContext(ctx, "undecodable cell scored as null",
		"row", err.Row,
		"side", err.Side.String(),
		"offset", err.Offset,
	)
}
