package config

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger builds the process logger from settings and installs it as the slog default.
// Logs go to stderr so formatted reports on stdout stay clean.
func InitLogger(s *Settings) *slog.Logger {
	return newLogger(os.Stderr, s)
}

func newLogger(w io.Writer, s *Settings) *slog.Logger {
	opts := &slog.HandlerOptions{Level: s.LogLevel}
	var h slog.Handler
	if s.LogFormat == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
