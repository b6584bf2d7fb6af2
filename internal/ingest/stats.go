package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// UpdateStats counts the current corpus and persists a snapshot. Meant to
// run after a load so dashboards see fresh totals without counting on read.
func UpdateStats(ctx context.Context, log *slog.Logger, repo StatsRepo) (*domain.StatsSnapshot, error) {
	snap, err := repo.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect stats: %w", err)
	}
	if err := repo.InsertSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("save stats: %w", err)
	}

	log.Info("stats snapshot saved",
		slog.Int("entries", snap.TotalEntries),
		slog.Int("published", snap.PublishedEntries),
		slog.Int("senses", snap.TotalSenses),
		slog.Int("examples", snap.TotalExamples),
		slog.Int("artists", snap.TotalArtists),
		slog.Int("places", snap.TotalPlaces),
		slog.Int("songs", snap.TotalSongs),
		slog.Int("domains", snap.TotalDomains),
	)
	return snap, nil
}
