package logger

import (
	"context"
	"log/slog"
	"os"
)

// Interface is the structured logger handed to every component. The plain
// methods take slog-style args, the w-suffixed ones alternating key/value pairs.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Interface

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	// Fatalw logs at error level and exits the process.
	Fatalw(msg string, keysAndValues ...interface{})
}

type slogLogger struct {
	logger *slog.Logger
}

// NewLogger wraps the process-wide slog logger configured by Init.
func NewLogger() Interface {
	return &slogLogger{logger: Get()}
}

func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{logger: l}
}

func (l *slogLogger) emit(level slog.Level, msg string, args []any) {
	l.logger.Log(context.Background(), level, msg, args...)
}

func (l *slogLogger) Debug(msg string, args ...any) { l.emit(slog.LevelDebug, msg, args) }
func (l *slogLogger) Info(msg string, args ...any)  { l.emit(slog.LevelInfo, msg, args) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.emit(slog.LevelWarn, msg, args) }
func (l *slogLogger) Error(msg string, args ...any) { l.emit(slog.LevelError, msg, args) }

func (l *slogLogger) With(args ...any) Interface {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) Debugw(msg string, kv ...interface{}) { l.emit(slog.LevelDebug, msg, kv) }
func (l *slogLogger) Infow(msg string, kv ...interface{})  { l.emit(slog.LevelInfo, msg, kv) }
func (l *slogLogger) Warnw(msg string, kv ...interface{})  { l.emit(slog.LevelWarn, msg, kv) }
func (l *slogLogger) Errorw(msg string, kv ...interface{}) { l.emit(slog.LevelError, msg, kv) }

func (l *slogLogger) Fatalw(msg string, kv ...interface{}) {
	l.emit(slog.LevelError, msg, kv)
	os.Exit(1)
}
