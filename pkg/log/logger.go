// Package log configures structured logging for the pipeline.
//
// Logs are emitted as JSON on stderr so that stdout stays reserved for the
// analysis report itself. Errors built with pkg/errors carry stack traces
// from cockroachdb/errors; the handler installed here extracts them into a
// dedicated attribute instead of dumping them into the message.
package log

import (
	"fmt"
	"log/slog"
	"os"
)

// Setup installs the process-wide slog logger at the given level.
// Valid levels are "debug", "info", "warn" and "error".
func Setup(loglevel string) {
	ops := slog.HandlerOptions{
		Level: ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
}

// ToLogLevel converts a level name to a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
