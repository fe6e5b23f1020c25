// Package log provides structured logging for the house price pipeline.
//
// It exposes a minimal slog-compatible interface backed by zerolog, with
// ML-specific attribute keys (see attributes.go), field chaining via With,
// and stack trace extraction for errors created by pkg/errors.
package log

import (
	"context"
	"os"
	"sync"

	cockroacherrors "github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	scierrors "github.com/UZRashid/MLG382-Project2/pkg/errors"
)

// Logger is a structured logging interface compatible with log/slog
// conventions: a message followed by alternating key/value fields.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level, value-compatible with slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var (
	mu         sync.RWMutex
	baseLogger = newZerologLogger(zerolog.New(os.Stderr).With().Timestamp().Logger())
)

func init() {
	// Route pkg/errors warnings through the structured logger. Warning types
	// implementing zerolog.LogObjectMarshaler keep their fields.
	scierrors.SetZerologWarnFunc(func(warning error) {
		GetLogger().Warn("data warning", ErrAttrKey, warning)
	})
}

// SetLogger replaces the process-wide base logger. Intended for tests and
// for the CLI to install console or JSON output.
func SetLogger(zl zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	baseLogger = newZerologLogger(zl)
}

// SetLevel sets the global minimum level.
func SetLevel(level Level) {
	zerolog.SetGlobalLevel(toZerologLevel(level))
}

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return baseLogger
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// zerologLogger adapts zerolog.Logger to the Logger interface.
type zerologLogger struct {
	zl zerolog.Logger
}

func newZerologLogger(zl zerolog.Logger) *zerologLogger {
	return &zerologLogger{zl: zl}
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	l.emit(l.zl.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel() && toZerologLevel(level) >= zerolog.GlobalLevel()
}

// emit applies alternating key/value fields to the event. Error values get
// special treatment: typed warnings and errors that implement
// zerolog.LogObjectMarshaler are logged as structured objects, and a stack
// trace is attached when cockroachdb/errors captured one.
func (l *zerologLogger) emit(event *zerolog.Event, msg string, fields []any) {
	if event == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case error:
			if obj, ok := v.(zerolog.LogObjectMarshaler); ok {
				event = event.Object(key, obj)
			} else {
				event = event.AnErr(key, v)
			}
			if trace := extractStackTrace(v); trace != "" {
				event = event.Str(StacktraceAttrKey, trace)
			}
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}

func extractStackTrace(err error) string {
	details := cockroacherrors.GetSafeDetails(err).SafeDetails
	if len(details) > 0 {
		return details[0]
	}
	return ""
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ToLevel parses a level string ("debug", "info", "warn", "error").
// Unknown strings default to info.
func ToLevel(level string) Level {
	switch level {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
