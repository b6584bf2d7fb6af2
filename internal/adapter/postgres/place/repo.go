// Package place implements the place repository using PostgreSQL.
// Upsert returns the current row so the caller can see whether coordinates
// are already known before paying for an external geocoding call; the
// display names are refreshed on every pass so they track the source.
package place

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides place persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new place repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectBySlugSQL = `
SELECT id, slug, name, full_name, latitude, longitude, within_id, created_at, updated_at
FROM places
WHERE slug = $1`

const insertPlaceSQL = `
INSERT INTO places (slug, name, full_name)
VALUES ($1, $2, $3)
RETURNING id, slug, name, full_name, latitude, longitude, within_id, created_at, updated_at`

const updatePlaceNamesSQL = `
UPDATE places SET name = $2, full_name = $3 WHERE id = $1`

// Upsert persists a place by slug and returns the current row. On an
// existing row only the display name and full name are overwritten;
// coordinates and containment learned earlier must survive a re-run. More
// than one existing match yields a *domain.DuplicateKeyError.
func (r *Repo) Upsert(ctx context.Context, p domain.Place) (*domain.Place, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectBySlugSQL, p.Slug)
	if err != nil {
		return nil, postgres.MapError(err, "place", p.Slug)
	}
	existing, err := scanPlaces(rows)
	if err != nil {
		return nil, postgres.MapError(err, "place", p.Slug)
	}
	if len(existing) > 1 {
		return nil, domain.NewDuplicateKeyError("place", p.Slug, len(existing))
	}
	if len(existing) == 1 {
		cur := existing[0]
		if cur.Name != p.Name || cur.FullName != p.FullName {
			if _, err := q.Exec(ctx, updatePlaceNamesSQL, cur.ID, p.Name, p.FullName); err != nil {
				return nil, postgres.MapError(err, "place", p.Slug)
			}
			cur.Name, cur.FullName = p.Name, p.FullName
		}
		return &cur, nil
	}

	var created domain.Place
	err = q.QueryRow(ctx, insertPlaceSQL, p.Slug, p.Name, p.FullName).Scan(
		&created.ID, &created.Slug, &created.Name, &created.FullName,
		&created.Latitude, &created.Longitude, &created.WithinID,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "place", p.Slug)
	}
	return &created, nil
}

// SetCoordinates records resolved coordinates for the place.
func (r *Repo) SetCoordinates(ctx context.Context, placeID uuid.UUID, lat, lon float64) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx,
		`UPDATE places SET latitude = $2, longitude = $3 WHERE id = $1`,
		placeID, lat, lon)
	if err != nil {
		return postgres.MapError(err, "place", placeID.String())
	}
	return nil
}

// SetWithin points the place at its enclosing place.
func (r *Repo) SetWithin(ctx context.Context, placeID, withinID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx, `UPDATE places SET within_id = $2 WHERE id = $1`, placeID, withinID)
	if err != nil {
		return postgres.MapError(err, "place", placeID.String())
	}
	return nil
}

func scanPlaces(rows pgx.Rows) ([]domain.Place, error) {
	defer rows.Close()
	var places []domain.Place
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(
			&p.ID, &p.Slug, &p.Name, &p.FullName,
			&p.Latitude, &p.Longitude, &p.WithinID,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		places = append(places, p)
	}
	return places, rows.Err()
}
