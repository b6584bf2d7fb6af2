package entry

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Filter defines parameters for listing dictionary entries.
type Filter struct {
	// Letter restricts the listing to one letter bucket ("a".."z" or "#").
	Letter *string

	// Publish filters by the publish flag; nil returns both.
	Publish *bool

	// Search performs ILIKE '%...%' on the headword.
	Search *string

	// SortBy determines the sort column: "sort_key", "created_at", "updated_at".
	// Default: "sort_key".
	SortBy string

	// SortOrder: "ASC" or "DESC". Default: "ASC".
	SortOrder string

	// Limit is the maximum number of entries to return. Default: 50, max: 500.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

const (
	defaultLimit = 50
	maxLimit     = 500

	sortBySortKey   = "sort_key"
	sortByCreatedAt = "created_at"
	sortByUpdatedAt = "updated_at"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalize applies defaults and clamps values.
func (f *Filter) normalize() {
	switch f.SortBy {
	case sortBySortKey, sortByCreatedAt, sortByUpdatedAt:
		// valid
	default:
		f.SortBy = sortBySortKey
	}

	switch f.SortOrder {
	case sortOrderASC, sortOrderDESC:
		// valid
	default:
		f.SortOrder = sortOrderASC
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// List returns entries matching the filter.
func (r *Repo) List(ctx context.Context, f Filter) ([]domain.Entry, error) {
	f.normalize()

	builder := sq.Select(
		"id", "slug", "headword", "sort_key", "letter", "publish",
		"COALESCE(raw_source::text, '')", "created_at", "updated_at",
	).
		From("entries").
		PlaceholderFormat(sq.Dollar)

	if f.Letter != nil && *f.Letter != "" {
		builder = builder.Where(sq.Eq{"letter": *f.Letter})
	}
	if f.Publish != nil {
		builder = builder.Where(sq.Eq{"publish": *f.Publish})
	}
	if f.Search != nil && *f.Search != "" {
		builder = builder.Where(sq.ILike{"headword": "%" + *f.Search + "%"})
	}

	builder = builder.
		OrderBy(f.SortBy + " " + f.SortOrder).
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID, &e.Slug, &e.Headword, &e.SortKey, &e.Letter, &e.Publish,
			&e.RawSource, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
