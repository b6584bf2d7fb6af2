// Package artist implements the artist repository using PostgreSQL.
package artist

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides artist persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new artist repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectIDsBySlugSQL = `
SELECT id FROM artists WHERE slug = $1`

const insertArtistSQL = `
INSERT INTO artists (slug, name)
VALUES ($1, $2)
RETURNING id`

const updateArtistSQL = `
UPDATE artists SET name = $2 WHERE id = $1`

// Upsert persists an artist by slug. More than one existing match yields a
// *domain.DuplicateKeyError.
func (r *Repo) Upsert(ctx context.Context, a domain.Artist) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectIDsBySlugSQL, a.Slug)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "artist", a.Slug)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "artist", a.Slug)
	}
	if len(ids) > 1 {
		return uuid.Nil, domain.NewDuplicateKeyError("artist", a.Slug, len(ids))
	}

	if len(ids) == 1 {
		if _, err = q.Exec(ctx, updateArtistSQL, ids[0], a.Name); err != nil {
			return uuid.Nil, postgres.MapError(err, "artist", a.Slug)
		}
		return ids[0], nil
	}

	var id uuid.UUID
	if err = q.QueryRow(ctx, insertArtistSQL, a.Slug, a.Name).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, "artist", a.Slug)
	}
	return id, nil
}

// SetOrigin points the artist at their origin place.
func (r *Repo) SetOrigin(ctx context.Context, artistID, placeID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx, `UPDATE artists SET origin_id = $2 WHERE id = $1`, artistID, placeID)
	if err != nil {
		return postgres.MapError(err, "artist", artistID.String())
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
