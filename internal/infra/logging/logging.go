// Package logging arma el *slog.Logger del proceso y reenvía los errores a Sentry.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

type Config struct {
	Level     slog.Level
	SentryDSN string
	Env       string
	Version   string
	LogFile   string // vacío = stderr
}

type Logger struct {
	*slog.Logger
	sentryEnabled bool
	logFile       *os.File
}

// ParseLevel acepta debug|info|warn|warning|error; cualquier otra cosa es info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func New(cfg Config) (*Logger, error) {
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
			Release:     cfg.Version,
		})
		if err != nil {
			return nil, fmt.Errorf("sentry init: %w", err)
		}
		sentryEnabled = true
	}

	var out io.Writer = os.Stderr
	var logFile *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		logFile = f
	}

	return &Logger{
		Logger:        slog.New(NewHandler(out, cfg.Level, sentryEnabled)),
		sentryEnabled: sentryEnabled,
		logFile:       logFile,
	}, nil
}

// NewHandler: text handler con hora local; si sentry está activo, los
// registros >= error también se mandan como evento.
func NewHandler(w io.Writer, level slog.Level, sentryEnabled bool) slog.Handler {
	return &sentryHandler{
		Handler: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					if t, ok := a.Value.Any().(time.Time); ok {
						a.Value = slog.StringValue(t.Local().Format("2006-01-02 15:04:05"))
					}
				}
				return a
			},
		}),
		sentryEnabled: sentryEnabled,
	}
}

// Close vacía la cola de Sentry y cierra el archivo de log.
func (l *Logger) Close(timeout time.Duration) {
	if l.sentryEnabled {
		sentry.Flush(timeout)
	}
	if l.logFile != nil {
		_ = l.logFile.Sync()
		_ = l.logFile.Close()
	}
}

// CapturePanic se llama desde un recover().
func (l *Logger) CapturePanic(v any, args ...any) {
	if v == nil {
		return
	}
	l.Error(fmt.Sprintf("panic: %v", v), args...)
	if l.sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

type sentryHandler struct {
	slog.Handler
	sentryEnabled bool
	attrs         []slog.Attr
}

func (h *sentryHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.Handler.Handle(ctx, r); err != nil {
		return err
	}
	if h.sentryEnabled && r.Level >= slog.LevelError {
		h.capture(r)
	}
	return nil
}

func (h *sentryHandler) capture(r slog.Record) {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	event.Message = r.Message
	event.Timestamp = r.Time
	for _, a := range h.attrs {
		event.Extra[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		if err, ok := a.Value.Any().(error); ok {
			event.Extra[a.Key] = err.Error()
			return true
		}
		event.Extra[a.Key] = a.Value.Any()
		return true
	})
	sentry.CaptureEvent(event)
}

func (h *sentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &sentryHandler{
		Handler:       h.Handler.WithAttrs(attrs),
		sentryEnabled: h.sentryEnabled,
		attrs:         merged,
	}
}

func (h *sentryHandler) WithGroup(name string) slog.Handler {
	return &sentryHandler{
		Handler:       h.Handler.WithGroup(name),
		sentryEnabled: h.sentryEnabled,
		attrs:         h.attrs,
	}
}
