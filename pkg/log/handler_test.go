package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/housight/housight/pkg/errors"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(WrapByErrFmtHandler(handler)), buf
}

func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	logger, buf := newBufferLogger()

	err := errors.NewValueError("Generator.Generate", "count must be positive")
	logger.Error("stage failed", ErrAttr(err))

	var record map[string]any
	if jerr := json.Unmarshal(buf.Bytes(), &record); jerr != nil {
		t.Fatalf("log output is not JSON: %v", jerr)
	}
	if _, ok := record[ErrAttrKey]; !ok {
		t.Errorf("record missing %q attribute: %v", ErrAttrKey, record)
	}
	if st, ok := record[StacktraceAttrKey].(string); !ok || st == "" {
		t.Errorf("record missing %q attribute: %v", StacktraceAttrKey, record)
	}
}

func TestErrFmtHandlerPassthroughWithoutError(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.Info("rows generated", StageKey, "generate", SamplesKey, 2000)

	var record map[string]any
	if jerr := json.Unmarshal(buf.Bytes(), &record); jerr != nil {
		t.Fatalf("log output is not JSON: %v", jerr)
	}
	if _, ok := record[StacktraceAttrKey]; ok {
		t.Errorf("record should not carry a stacktrace: %v", record)
	}
	if got := record[StageKey]; got != "generate" {
		t.Errorf("stage attribute = %v, want %q", got, "generate")
	}
}

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := ToLogLevel(tt.in); got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
