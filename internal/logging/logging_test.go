package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNew_WritesOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, slog.LevelInfo, false))

	logger.Info("processing request", "user_id", "42", "total_items", 3)

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Fatalf("expected level in output, got %q", out)
	}
	if !strings.Contains(out, "processing request") {
		t.Fatalf("expected message in output, got %q", out)
	}

	fieldsStart := strings.Index(out, "{")
	if fieldsStart == -1 {
		t.Fatalf("expected encoded fields in output, got %q", out)
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out[fieldsStart:])), &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}
	if fields["user_id"] != "42" {
		t.Fatalf("fields[user_id] = %v, want 42", fields["user_id"])
	}
}

func TestHandler_RespectsLevel(t *testing.T) {
	h := newPrettyHandler(&bytes.Buffer{}, slog.LevelWarn, false)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be disabled when level is warn")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should be enabled when level is warn")
	}
}

func TestWithAttrs_CarriesIntoSubsequentRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, slog.LevelInfo, false))

	logger.With("request_id", "abc").Info("done")

	if !strings.Contains(buf.String(), `"request_id":"abc"`) {
		t.Fatalf("expected carried attr in output, got %q", buf.String())
	}
}

func TestWithGroup_NoNameIsNoop(t *testing.T) {
	h := newPrettyHandler(&bytes.Buffer{}, slog.LevelInfo, false)
	if h.WithGroup("") != h {
		t.Fatal("WithGroup(\"\") should return the same handler")
	}
}

func TestDim_PassthroughWithoutColor(t *testing.T) {
	h := newPrettyHandler(&bytes.Buffer{}, slog.LevelInfo, false)
	if got := h.dim("plain"); got != "plain" {
		t.Fatalf("dim() = %q, want unmodified passthrough", got)
	}
}
