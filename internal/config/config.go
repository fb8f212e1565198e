package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string
	// RemoteTimeout bounds every call against a remote server's admin API.
	RemoteTimeout time.Duration
	// SyncConcurrent controls whether a full-server sync runs its
	// resource kinds in parallel after the status check.
	SyncConcurrent bool
}

func Load() (*Config, error) {
	remoteTimeout, err := time.ParseDuration(getEnv("REMOTE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("parse REMOTE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		HTTPListenAddr: getEnv("HTTP_LISTEN_ADDR", ":8090"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServiceName:    getEnv("SERVICE_NAME", "syncd"),
		RemoteTimeout:  remoteTimeout,
		SyncConcurrent: getEnv("SYNC_CONCURRENT", "true") != "false",
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
