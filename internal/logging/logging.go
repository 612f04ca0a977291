// Package logging provides the request-scoped structured logger used
// across the service: a colorized, single-line slog handler when stdout
// is a terminal, and compact JSON fields otherwise.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ParseLevel maps the LOG_LEVEL environment convention to a slog.Level,
// defaulting to info on anything unrecognized.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// New builds the process-wide logger. Color is enabled when w is a TTY and
// NO_COLOR is unset, matching common terminal conventions.
func New(w io.Writer, level slog.Level) *slog.Logger {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) && os.Getenv("NO_COLOR") == ""
	}
	return slog.New(newPrettyHandler(w, level, useColor))
}

type prettyHandler struct {
	level  slog.Level
	writer io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string

	color bool
}

func newPrettyHandler(w io.Writer, level slog.Level, useColor bool) *prettyHandler {
	return &prettyHandler{
		level:  level,
		writer: w,
		mu:     &sync.Mutex{},
		color:  useColor,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	ts := r.Time.Format(time.RFC3339)
	lvl := h.formatLevel(r.Level)

	buf.WriteString(h.dim(ts))
	buf.WriteString(" | ")
	buf.WriteString(lvl)
	buf.WriteString(" | ")
	buf.WriteString(h.message(r.Message))

	fields := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, a := range h.attrs {
		fields[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value.Any()
		return true
	})

	if len(fields) > 0 {
		encoded, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("logging: encode fields: %w", err)
		}
		buf.WriteString(" | ")
		buf.WriteString(h.dim(string(encoded)))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

func (h *prettyHandler) formatLevel(level slog.Level) string {
	s := fmt.Sprintf("%-5s", strings.ToUpper(level.String()))
	if !h.color {
		return s
	}
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow).Sprint(s)
	case level >= slog.LevelInfo:
		return color.New(color.FgBlue).Sprint(s)
	default:
		return color.New(color.FgMagenta).Sprint(s)
	}
}

func (h *prettyHandler) message(msg string) string {
	if !h.color {
		return msg
	}
	return color.New(color.FgCyan).Sprint(msg)
}

func (h *prettyHandler) dim(s string) string {
	if !h.color {
		return s
	}
	return color.New(color.FgHiBlack).Sprint(s)
}
