package config

import (
	"log/slog"
	"os"
	"time"
)

// Settings holds process-level options read from the environment. Command-line flags
// take precedence over these values.
type Settings struct {
	LogLevel        slog.Level
	LogFormat       string // text or json
	Addr            string
	Format          string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadSettings reads PPHGO_* environment variables with defaults
func LoadSettings() *Settings {
	return &Settings{
		LogLevel:        ParseLogLevel(getenv("PPHGO_LOG_LEVEL", "info")),
		LogFormat:       getenv("PPHGO_LOG_FORMAT", "text"),
		Addr:            getenv("PPHGO_ADDR", ":8080"),
		Format:          getenv("PPHGO_FORMAT", "console"),
		ReadTimeout:     parseDuration("PPHGO_READ_TIMEOUT", 5*time.Second),
		ShutdownTimeout: parseDuration("PPHGO_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseDuration(env string, def time.Duration) time.Duration {
	if v := os.Getenv(env); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
