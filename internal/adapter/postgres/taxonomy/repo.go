// Package taxonomy implements the shared tag repositories (domains, regions,
// semantic classes, synonym sets) using PostgreSQL. All four tables share the
// slug/name shape; each upsert is get-or-create on the slug.
package taxonomy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides taxonomy tag persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new taxonomy repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// UpsertDomain gets or creates a domain tag by slug.
func (r *Repo) UpsertDomain(ctx context.Context, d domain.Domain) (uuid.UUID, error) {
	return r.upsertTag(ctx, "domains", "domain", d.Slug, d.Name)
}

// UpsertRegion gets or creates a region tag by slug.
func (r *Repo) UpsertRegion(ctx context.Context, reg domain.Region) (uuid.UUID, error) {
	return r.upsertTag(ctx, "regions", "region", reg.Slug, reg.Name)
}

// UpsertSemanticClass gets or creates a semantic class tag by slug.
func (r *Repo) UpsertSemanticClass(ctx context.Context, sc domain.SemanticClass) (uuid.UUID, error) {
	return r.upsertTag(ctx, "semantic_classes", "semantic class", sc.Slug, sc.Name)
}

// UpsertSynSet gets or creates a synonym set by slug.
func (r *Repo) UpsertSynSet(ctx context.Context, ss domain.SynSet) (uuid.UUID, error) {
	return r.upsertTag(ctx, "syn_sets", "syn set", ss.Slug, ss.Name)
}

func (r *Repo) upsertTag(ctx context.Context, table, entity, slug, name string) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE slug = $1`, table), slug)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, entity, slug)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return uuid.Nil, postgres.MapError(err, entity, slug)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return uuid.Nil, postgres.MapError(err, entity, slug)
	}
	rows.Close()

	if len(ids) > 1 {
		return uuid.Nil, domain.NewDuplicateKeyError(entity, slug, len(ids))
	}
	if len(ids) == 1 {
		_, err = q.Exec(ctx, fmt.Sprintf(`UPDATE %s SET name = $2 WHERE id = $1`, table), ids[0], name)
		if err != nil {
			return uuid.Nil, postgres.MapError(err, entity, slug)
		}
		return ids[0], nil
	}

	var id uuid.UUID
	err = q.QueryRow(ctx,
		fmt.Sprintf(`INSERT INTO %s (slug, name) VALUES ($1, $2) RETURNING id`, table),
		slug, name).Scan(&id)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, entity, slug)
	}
	return id, nil
}
