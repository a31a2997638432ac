package calculation

import (
	"fmt"
	"log/slog"
)

// Logger is the logging interface used by the calculation engine
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// SlogLogger adapts a *slog.Logger to Logger. Messages are formatted before logging.
type SlogLogger struct {
	L *slog.Logger
}

// NewSlogLogger wraps l, falling back to the slog default when l is nil
func NewSlogLogger(l *slog.Logger) SlogLogger {
	if l == nil {
		l = slog.Default()
	}
	return SlogLogger{L: l}
}

func (s SlogLogger) Debugf(format string, args ...interface{}) {
	s.L.Debug(fmt.Sprintf(format, args...))
}

func (s SlogLogger) Infof(format string, args ...interface{}) {
	s.L.Info(fmt.Sprintf(format, args...))
}

func (s SlogLogger) Warnf(format string, args ...interface{}) {
	s.L.Warn(fmt.Sprintf(format, args...))
}

func (s SlogLogger) Errorf(format string, args ...interface{}) {
	s.L.Error(fmt.Sprintf(format, args...))
}
