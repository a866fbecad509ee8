// Package cli provides common initialization for the command entrypoints.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"expensetracker/internal/config"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
)

// SetupLogger initializes structured logging at the configured level and
// installs it as the process default.
func SetupLogger(level string) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(level),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStore opens the database and brings the schema up to date, seeding the
// default categories. A partially initialized schema is fatal: the process
// exits rather than serving against it.
func InitStore(ctx context.Context, logger *log.Logger, cfg *config.Config) *storage.DB {
	db, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	if err := storage.Initialize(ctx, db, cfg.SQLiteDBPath, cfg.ResetOnStart); err != nil {
		db.Close()
		logger.Error("Failed to initialize schema", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	return db
}
