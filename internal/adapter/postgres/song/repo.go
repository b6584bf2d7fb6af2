// Package song implements the song repository using PostgreSQL.
package song

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides song persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new song repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectIDsBySlugSQL = `
SELECT id FROM songs WHERE slug = $1`

const insertSongSQL = `
INSERT INTO songs (slug, title, album, artist_name, release_date, external_id, streaming_uri)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

const updateSongSQL = `
UPDATE songs
SET title = $2, album = $3, artist_name = $4, release_date = $5,
    external_id = COALESCE($6, external_id),
    streaming_uri = COALESCE($7, streaming_uri)
WHERE id = $1`

// Upsert persists a song by its slug. An update never blanks a previously
// learned external id or streaming URI with an absent one. More than one
// existing match yields a *domain.DuplicateKeyError.
func (r *Repo) Upsert(ctx context.Context, s domain.Song) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectIDsBySlugSQL, s.Slug)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "song", s.Slug)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "song", s.Slug)
	}
	if len(ids) > 1 {
		return uuid.Nil, domain.NewDuplicateKeyError("song", s.Slug, len(ids))
	}

	if len(ids) == 1 {
		_, err = q.Exec(ctx, updateSongSQL, ids[0],
			s.Title, s.Album, s.ArtistName, s.ReleaseDate, s.ExternalID, s.StreamingURI)
		if err != nil {
			return uuid.Nil, postgres.MapError(err, "song", s.Slug)
		}
		return ids[0], nil
	}

	var id uuid.UUID
	err = q.QueryRow(ctx, insertSongSQL,
		s.Slug, s.Title, s.Album, s.ArtistName, s.ReleaseDate, s.ExternalID, s.StreamingURI).Scan(&id)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "song", s.Slug)
	}
	return id, nil
}

// ReplaceArtists rebuilds the song's artist credits.
func (r *Repo) ReplaceArtists(ctx context.Context, songID uuid.UUID, primary, featured []uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM song_artists WHERE song_id = $1`, songID); err != nil {
		return fmt.Errorf("purge song artists: %w", err)
	}

	const link = `INSERT INTO song_artists (song_id, artist_id, featured) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`

	batch := &pgx.Batch{}
	for _, artistID := range primary {
		batch.Queue(link, songID, artistID, false)
	}
	for _, artistID := range featured {
		batch.Queue(link, songID, artistID, true)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("link song artists: %w", err)
		}
	}
	return nil
}

func scanIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
