// Package stats implements the corpus statistics repository using PostgreSQL.
package stats

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides statistics persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new stats repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Collect counts the current corpus and returns an unsaved snapshot.
func (r *Repo) Collect(ctx context.Context) (*domain.StatsSnapshot, error) {
	var snap domain.StatsSnapshot

	counts := []struct {
		dest  *int
		table string
		where any
	}{
		{&snap.TotalEntries, "entries", nil},
		{&snap.PublishedEntries, "entries", sq.Eq{"publish": true}},
		{&snap.TotalSenses, "senses", nil},
		{&snap.TotalExamples, "examples", nil},
		{&snap.TotalArtists, "artists", nil},
		{&snap.TotalPlaces, "places", nil},
		{&snap.TotalSongs, "songs", nil},
		{&snap.TotalDomains, "domains", nil},
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	for _, c := range counts {
		builder := sq.Select("COUNT(*)").From(c.table).PlaceholderFormat(sq.Dollar)
		if c.where != nil {
			builder = builder.Where(c.where)
		}
		sql, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build count query for %s: %w", c.table, err)
		}
		if err := q.QueryRow(ctx, sql, args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}

	return &snap, nil
}

const insertSnapshotSQL = `
INSERT INTO stats_snapshots
    (total_entries, published_entries, total_senses, total_examples,
     total_artists, total_places, total_songs, total_domains)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, taken_at`

// InsertSnapshot persists a collected snapshot and fills in its id and
// timestamp.
func (r *Repo) InsertSnapshot(ctx context.Context, snap *domain.StatsSnapshot) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	err := q.QueryRow(ctx, insertSnapshotSQL,
		snap.TotalEntries, snap.PublishedEntries, snap.TotalSenses, snap.TotalExamples,
		snap.TotalArtists, snap.TotalPlaces, snap.TotalSongs, snap.TotalDomains,
	).Scan(&snap.ID, &snap.TakenAt)
	if err != nil {
		return fmt.Errorf("insert stats snapshot: %w", err)
	}
	return nil
}
