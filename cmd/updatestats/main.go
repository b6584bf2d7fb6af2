// Command updatestats recomputes the site statistics snapshot from the
// current table counts. It is intended to be invoked by an external cron
// job after content changes.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/adapter/postgres/stats"
	"github.com/rhymebook/rhymebook-backend/internal/app"
	"github.com/rhymebook/rhymebook-backend/internal/config"
	"github.com/rhymebook/rhymebook-backend/internal/ingest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	snap, err := ingest.UpdateStats(ctx, logger, stats.New(pool))
	if err != nil {
		logger.Error("update stats", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("snapshot stored", slog.Time("taken_at", snap.TakenAt))
}
