// Package logging builds the slog loggers shared by the CLI and the HTTP server
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

type contextKey string

const loggerKey contextKey = "logger"

// ParseLevel maps a level name to a slog level. Unknown names fall back to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// New creates a logger writing text or JSON records to w
func New(w io.Writer, level, format string) *slog.Logger {
	lvl, _ := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ToContext stores a logger on the context
func ToContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the request logger, or slog's default when none is set
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// EngineLogger adapts a slog logger to the printf-style logger the fee
// engine expects
type EngineLogger struct {
	L *slog.Logger
}

func (e EngineLogger) Debugf(format string, args ...any) {
	e.L.Debug(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Infof(format string, args ...any) {
	e.L.Info(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Warnf(format string, args ...any) {
	e.L.Warn(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Errorf(format string, args ...any) {
	e.L.Error(fmt.Sprintf(format, args...))
}
