/*
Package config loads server configuration from the environment.

A .env file in the working directory is loaded when present; real
environment variables always win over the file. Every key has a default
so the server starts with no configuration at all.

KEYS:
  PORT       HTTP listen port (default 8080)
  DB_PATH    SQLite database file (default rotation.db, ":memory:" ok)
  LOG_LEVEL  logrus level string (default info)
*/
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the server's runtime settings.
type Config struct {
	Port     int
	DBPath   string
	LogLevel logrus.Level
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     8080,
		DBPath:   "rotation.db",
		LogLevel: logrus.InfoLevel,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// Addr returns the listen address for http.Server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }
