package cmd

import (
	"fmt"
	"log/slog"

	"github.com/babysteps/babysteps/db"
	"github.com/babysteps/babysteps/internal/config"
)

// runMigrate applies pending database migrations and exits. Useful for
// deploy pipelines that migrate before rolling the server.
func runMigrate() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := db.Migrate(cfg.PostgresURL()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("migrations applied")
	return nil
}
