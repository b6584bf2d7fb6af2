// Package namedentity implements the named entity repository using
// PostgreSQL. The natural key is (entity type, slug): the same slug can name
// both a person and a place.
package namedentity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides named entity persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new named entity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectIDsByKeySQL = `
SELECT id FROM named_entities WHERE entity_type = $1 AND slug = $2`

const insertEntitySQL = `
INSERT INTO named_entities (entity_type, slug, name, pref_label)
VALUES ($1, $2, $3, $4)
RETURNING id`

const updateEntitySQL = `
UPDATE named_entities SET name = $2, pref_label = $3 WHERE id = $1`

// Upsert persists a named entity by its (type, slug) key. More than one
// existing match yields a *domain.DuplicateKeyError.
func (r *Repo) Upsert(ctx context.Context, e domain.NamedEntity) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	key := e.EntityType + "/" + e.Slug

	rows, err := q.Query(ctx, selectIDsByKeySQL, e.EntityType, e.Slug)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "named entity", key)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return uuid.Nil, postgres.MapError(err, "named entity", key)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return uuid.Nil, postgres.MapError(err, "named entity", key)
	}
	rows.Close()

	if len(ids) > 1 {
		return uuid.Nil, domain.NewDuplicateKeyError("named entity", key, len(ids))
	}
	if len(ids) == 1 {
		if _, err = q.Exec(ctx, updateEntitySQL, ids[0], e.Name, e.PrefLabel); err != nil {
			return uuid.Nil, postgres.MapError(err, "named entity", key)
		}
		return ids[0], nil
	}

	var id uuid.UUID
	if err = q.QueryRow(ctx, insertEntitySQL, e.EntityType, e.Slug, e.Name, e.PrefLabel).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, "named entity", key)
	}
	return id, nil
}
