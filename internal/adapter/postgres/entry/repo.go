// Package entry implements the dictionary entry repository using PostgreSQL.
// Writes follow the get-or-create pattern on the slug natural key so a re-run
// of the same source converges instead of accumulating rows.
package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectIDsBySlugSQL = `
SELECT id FROM entries WHERE slug = $1`

const insertEntrySQL = `
INSERT INTO entries (slug, headword, sort_key, letter, publish, raw_source)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

const updateEntrySQL = `
UPDATE entries
SET headword = $2, sort_key = $3, letter = $4, publish = $5, raw_source = $6
WHERE id = $1`

const getBySlugSQL = `
SELECT id, slug, headword, sort_key, letter, publish, COALESCE(raw_source, ''), created_at, updated_at
FROM entries
WHERE slug = $1`

// Upsert persists an entry by its slug. Zero existing matches insert, one
// updates in place. More than one match means the store is corrupt for this
// key and yields a *domain.DuplicateKeyError.
func (r *Repo) Upsert(ctx context.Context, e domain.Entry) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	ids, err := collectIDs(ctx, q, selectIDsBySlugSQL, e.Slug)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "entry", e.Slug)
	}
	if len(ids) > 1 {
		return uuid.Nil, domain.NewDuplicateKeyError("entry", e.Slug, len(ids))
	}

	if len(ids) == 1 {
		_, err = q.Exec(ctx, updateEntrySQL, ids[0], e.Headword, e.SortKey, e.Letter, e.Publish, e.RawSource)
		if err != nil {
			return uuid.Nil, postgres.MapError(err, "entry", e.Slug)
		}
		return ids[0], nil
	}

	var id uuid.UUID
	err = q.QueryRow(ctx, insertEntrySQL, e.Slug, e.Headword, e.SortKey, e.Letter, e.Publish, e.RawSource).Scan(&id)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "entry", e.Slug)
	}
	return id, nil
}

// GetBySlug returns a single entry, domain.ErrNotFound when absent.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var e domain.Entry
	err := q.QueryRow(ctx, getBySlugSQL, slug).Scan(
		&e.ID, &e.Slug, &e.Headword, &e.SortKey, &e.Letter, &e.Publish, &e.RawSource,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "entry", slug)
	}
	return &e, nil
}

const deleteEntryFormsSQL = `
DELETE FROM entry_forms WHERE entry_id = $1`

const upsertFormSQL = `
INSERT INTO forms (slug, label, frequency)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET label = EXCLUDED.label, frequency = EXCLUDED.frequency
RETURNING id`

const insertEntryFormSQL = `
INSERT INTO entry_forms (entry_id, form_id, position)
VALUES ($1, $2, $3)
ON CONFLICT (entry_id, form_id) DO NOTHING`

// ReplaceForms rebuilds the entry's spelling variants: the existing links are
// purged and the given forms relinked in order. Form rows themselves are
// shared across entries and upserted by slug.
func (r *Repo) ReplaceForms(ctx context.Context, entryID uuid.UUID, forms []domain.Form) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, deleteEntryFormsSQL, entryID); err != nil {
		return fmt.Errorf("purge entry forms: %w", err)
	}

	batch := &pgx.Batch{}
	for pos, f := range forms {
		var formID uuid.UUID
		if err := q.QueryRow(ctx, upsertFormSQL, f.Slug, f.Label, f.Frequency).Scan(&formID); err != nil {
			return postgres.MapError(err, "form", f.Slug)
		}
		batch.Queue(insertEntryFormSQL, entryID, formID, pos)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("link entry forms: %w", err)
		}
	}
	return nil
}

const deleteEntrySensesSQL = `
DELETE FROM entry_senses WHERE entry_id = $1`

const insertEntrySenseSQL = `
INSERT INTO entry_senses (entry_id, sense_id, position)
VALUES ($1, $2, $3)
ON CONFLICT (entry_id, sense_id) DO NOTHING`

// ReplaceSenses rebuilds the entry→sense links in the given order.
func (r *Repo) ReplaceSenses(ctx context.Context, entryID uuid.UUID, senseIDs []uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, deleteEntrySensesSQL, entryID); err != nil {
		return fmt.Errorf("purge entry senses: %w", err)
	}

	batch := &pgx.Batch{}
	for pos, senseID := range senseIDs {
		batch.Queue(insertEntrySenseSQL, entryID, senseID, pos)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("link entry senses: %w", err)
		}
	}
	return nil
}

func collectIDs(ctx context.Context, q postgres.Querier, sql string, args ...any) ([]uuid.UUID, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
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
