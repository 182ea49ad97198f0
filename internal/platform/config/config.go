package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("FINATTR_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	logLevel := os.Getenv("FINATTR_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	shutdown := 10 * time.Second
	if raw := os.Getenv("FINATTR_SHUTDOWN_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			shutdown = d
		}
	}
	return Server{
		Addr:            addr,
		LogLevel:        logLevel,
		ShutdownTimeout: shutdown,
	}
}
