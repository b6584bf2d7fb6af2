// Package example implements the lyric citation repository using PostgreSQL.
// The natural key of a citation is (song title, artist name, release date,
// album, lyric); the same lyric can legitimately recur across dates and
// album releases.
package example

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides citation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new example repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectIDsByKeySQL = `
SELECT id FROM examples
WHERE song_title = $1 AND artist_name = $2 AND release_date = $3 AND album = $4 AND lyric = $5`

const insertExampleSQL = `
INSERT INTO examples (song_title, artist_name, album, release_date, release_date_verbatim, lyric)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

const updateExampleSQL = `
UPDATE examples SET release_date_verbatim = $2 WHERE id = $1`

// Upsert persists a citation by its natural key. More than one existing
// match yields a *domain.DuplicateKeyError.
func (r *Repo) Upsert(ctx context.Context, ex domain.Example) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	key := fmt.Sprintf("%s/%s/%s/%s", ex.SongTitle, ex.ArtistName, ex.ReleaseDate.Format("2006-01-02"), ex.Album)

	rows, err := q.Query(ctx, selectIDsByKeySQL, ex.SongTitle, ex.ArtistName, ex.ReleaseDate, ex.Album, ex.Lyric)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "example", key)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "example", key)
	}
	if len(ids) > 1 {
		return uuid.Nil, domain.NewDuplicateKeyError("example", key, len(ids))
	}

	if len(ids) == 1 {
		_, err = q.Exec(ctx, updateExampleSQL, ids[0], ex.ReleaseDateVerbatim)
		if err != nil {
			return uuid.Nil, postgres.MapError(err, "example", key)
		}
		return ids[0], nil
	}

	var id uuid.UUID
	err = q.QueryRow(ctx, insertExampleSQL,
		ex.SongTitle, ex.ArtistName, ex.Album, ex.ReleaseDate, ex.ReleaseDateVerbatim, ex.Lyric).Scan(&id)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "example", key)
	}
	return id, nil
}

const listBySenseSQL = `
SELECT e.id, e.song_title, e.artist_name, e.album, e.release_date, e.release_date_verbatim,
       e.lyric, e.song_id, e.created_at, e.updated_at
FROM examples e
JOIN sense_examples se ON se.example_id = e.id
WHERE se.sense_id = $1
ORDER BY e.release_date, se.position`

// ListBySense returns the citations of one sense in release-date order.
func (r *Repo) ListBySense(ctx context.Context, senseID uuid.UUID) ([]domain.Example, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, listBySenseSQL, senseID)
	if err != nil {
		return nil, postgres.MapError(err, "example", senseID.String())
	}
	defer rows.Close()

	var out []domain.Example
	for rows.Next() {
		var ex domain.Example
		err := rows.Scan(&ex.ID, &ex.SongTitle, &ex.ArtistName, &ex.Album, &ex.ReleaseDate,
			&ex.ReleaseDateVerbatim, &ex.Lyric, &ex.SongID, &ex.CreatedAt, &ex.UpdatedAt)
		if err != nil {
			return nil, postgres.MapError(err, "example", senseID.String())
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}

// PurgeRelations removes everything the citation owns ahead of a rebuild.
func (r *Repo) PurgeRelations(ctx context.Context, exampleID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM example_artists WHERE example_id = $1`, exampleID)
	batch.Queue(`DELETE FROM example_entities WHERE example_id = $1`, exampleID)
	batch.Queue(`DELETE FROM example_rhymes WHERE example_id = $1`, exampleID)
	batch.Queue(`DELETE FROM lyric_links WHERE example_id = $1`, exampleID)
	batch.Queue(`UPDATE examples SET song_id = NULL WHERE id = $1`, exampleID)

	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("purge example relations: %w", err)
		}
	}
	return nil
}

// SetSong points the citation at the song it quotes.
func (r *Repo) SetSong(ctx context.Context, exampleID, songID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx, `UPDATE examples SET song_id = $2 WHERE id = $1`, exampleID, songID)
	if err != nil {
		return postgres.MapError(err, "example", exampleID.String())
	}
	return nil
}

// AddArtist links a credited artist, featured or primary.
func (r *Repo) AddArtist(ctx context.Context, exampleID, artistID uuid.UUID, featured bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx,
		`INSERT INTO example_artists (example_id, artist_id, featured) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		exampleID, artistID, featured)
	if err != nil {
		return fmt.Errorf("link example artist: %w", err)
	}
	return nil
}

// AddEntity links a named entity mentioned in the lyric.
func (r *Repo) AddEntity(ctx context.Context, exampleID, entityID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx,
		`INSERT INTO example_entities (example_id, entity_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		exampleID, entityID)
	if err != nil {
		return fmt.Errorf("link example entity: %w", err)
	}
	return nil
}

const insertRhymeSQL = `
INSERT INTO example_rhymes (example_id, word_one, word_two, position_one, position_two, target_sense_id)
VALUES ($1, $2, $3, $4, $5, $6)`

// InsertRhymes bulk-inserts the citation's rhyme pairs using pgx.Batch.
func (r *Repo) InsertRhymes(ctx context.Context, exampleID uuid.UUID, rhymes []domain.ExampleRhyme) error {
	if len(rhymes) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rh := range rhymes {
		batch.Queue(insertRhymeSQL,
			exampleID, rh.WordOne, rh.WordTwo, rh.PositionOne, rh.PositionTwo, rh.TargetSenseID)
	}
	return r.sendBatchExec(ctx, batch, "insert rhymes")
}

const insertLyricLinkSQL = `
INSERT INTO lyric_links (example_id, text, link_type, target_lemma, target_slug, position)
VALUES ($1, $2, $3, $4, $5, $6)`

// InsertLyricLinks bulk-inserts the citation's span annotations using pgx.Batch.
func (r *Repo) InsertLyricLinks(ctx context.Context, exampleID uuid.UUID, links []domain.LyricLink) error {
	if len(links) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, l := range links {
		batch.Queue(insertLyricLinkSQL,
			exampleID, l.Text, l.LinkType, l.TargetLemma, l.TargetSlug, l.Position)
	}
	return r.sendBatchExec(ctx, batch, "insert lyric links")
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch, op string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
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
