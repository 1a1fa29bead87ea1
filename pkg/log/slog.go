package log

import (
	"context"
	"log/slog"
)

// slogLogger adapts a *slog.Logger to the Logger interface.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger wraps the given slog logger. A nil argument wraps
// slog.Default, so a SetupLogger call earlier in main is picked up.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, fields ...any) {
	s.l.Debug(msg, fields...)
}

func (s *slogLogger) Info(msg string, fields ...any) {
	s.l.Info(msg, fields...)
}

func (s *slogLogger) Warn(msg string, fields ...any) {
	s.l.Warn(msg, fields...)
}

func (s *slogLogger) Error(msg string, fields ...any) {
	s.l.Error(msg, fields...)
}

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}
