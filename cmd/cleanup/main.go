// Command cleanup permanently removes trashed notes that are past the
// configured retention period. Meant to run from cron; exits 1 on any
// failure so the scheduler can alert.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/daybookhq/daybook-backend/internal/adapter/postgres"
	"github.com/daybookhq/daybook-backend/internal/adapter/postgres/note"
	"github.com/daybookhq/daybook-backend/internal/app"
	"github.com/daybookhq/daybook-backend/internal/config"
)

const runTimeout = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	if err := run(cfg, logger); err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	cutoff := time.Now().AddDate(0, 0, -cfg.Notes.TrashRetentionDays)

	purged, err := note.New(pool).PurgeTrashedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge trashed notes before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	logger.Info("trashed notes purged",
		slog.Int("purged", purged),
		slog.Time("cutoff", cutoff),
	)
	return nil
}
