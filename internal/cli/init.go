// Package cli provides common CLI initialization utilities.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pagu/internal/config"
	plog "pagu/internal/log"
	"pagu/internal/storage"
)

// SetupLogger initializes structured logging on stderr, keeping stdout for
// rendered tables. Returns the configured logger and sets it as the
// default logger.
func SetupLogger(level string) *slog.Logger {
	lvl, err := plog.ParseLevel(level)
	logger := plog.New(plog.Config{Level: lvl, Output: os.Stderr})
	slog.SetDefault(logger)
	if err != nil {
		logger.Warn("Falling back to info logging", plog.FieldError, err)
	}
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger, cfg *config.Config) *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", plog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitRunLog opens the run log at dbPath. An empty path disables it and
// returns nil; failures are logged and also return nil so a broken run log
// never blocks reporting.
func InitRunLog(logger *slog.Logger, dbPath string) *storage.RunLog {
	if dbPath == "" {
		return nil
	}
	runLog, err := storage.OpenRunLog(dbPath)
	if err != nil {
		logger.Warn("Run log disabled", plog.FieldError, err, plog.FieldPath, dbPath)
		return nil
	}
	return runLog
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
