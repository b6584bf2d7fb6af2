// Package sense implements the sense repository using PostgreSQL.
// A sense's owned relations (examples, taxonomy links, xrefs, collocates,
// cited artists) are rebuilt from scratch on every ingestion: PurgeRelations
// first, then the Add/Insert methods relink the current source state.
package sense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/rhymebook/rhymebook-backend/internal/adapter/postgres"
	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// Repo provides sense persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new sense repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectIDsByXMLIDSQL = `
SELECT id FROM senses WHERE xml_id = $1`

const insertSenseSQL = `
INSERT INTO senses (xml_id, headword, part_of_speech, definition, etymology, notes, publish)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

const updateSenseSQL = `
UPDATE senses
SET headword = $2, part_of_speech = $3, definition = $4, etymology = $5, notes = $6, publish = $7
WHERE id = $1`

// Upsert persists a sense by its source document id. More than one existing
// match yields a *domain.DuplicateKeyError.
func (r *Repo) Upsert(ctx context.Context, s domain.Sense) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectIDsByXMLIDSQL, s.XMLID)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "sense", s.XMLID)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "sense", s.XMLID)
	}
	if len(ids) > 1 {
		return uuid.Nil, domain.NewDuplicateKeyError("sense", s.XMLID, len(ids))
	}

	if len(ids) == 1 {
		_, err = q.Exec(ctx, updateSenseSQL, ids[0],
			s.Headword, s.PartOfSpeech, s.Definition, s.Etymology, s.Notes, s.Publish)
		if err != nil {
			return uuid.Nil, postgres.MapError(err, "sense", s.XMLID)
		}
		return ids[0], nil
	}

	var id uuid.UUID
	err = q.QueryRow(ctx, insertSenseSQL,
		s.XMLID, s.Headword, s.PartOfSpeech, s.Definition, s.Etymology, s.Notes, s.Publish).Scan(&id)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "sense", s.XMLID)
	}
	return id, nil
}

// PurgeRelations removes everything the sense owns ahead of a rebuild.
func (r *Repo) PurgeRelations(ctx context.Context, senseID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM sense_domains WHERE sense_id = $1`, senseID)
	batch.Queue(`DELETE FROM sense_regions WHERE sense_id = $1`, senseID)
	batch.Queue(`DELETE FROM sense_semantic_classes WHERE sense_id = $1`, senseID)
	batch.Queue(`DELETE FROM sense_examples WHERE sense_id = $1`, senseID)
	batch.Queue(`DELETE FROM sense_artists WHERE sense_id = $1`, senseID)
	batch.Queue(`DELETE FROM xrefs WHERE sense_id = $1`, senseID)
	batch.Queue(`DELETE FROM collocates WHERE sense_id = $1`, senseID)
	batch.Queue(`UPDATE senses SET syn_set_id = NULL WHERE id = $1`, senseID)

	results := q.SendBatch(ctx, batch)
	defer results.Close()
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("purge sense relations: %w", err)
		}
	}
	return nil
}

// AddDomain links the sense to a domain tag.
func (r *Repo) AddDomain(ctx context.Context, senseID, domainID uuid.UUID) error {
	return r.link(ctx,
		`INSERT INTO sense_domains (sense_id, domain_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		senseID, domainID)
}

// AddRegion links the sense to a region tag.
func (r *Repo) AddRegion(ctx context.Context, senseID, regionID uuid.UUID) error {
	return r.link(ctx,
		`INSERT INTO sense_regions (sense_id, region_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		senseID, regionID)
}

// AddSemanticClass links the sense to a semantic class tag.
func (r *Repo) AddSemanticClass(ctx context.Context, senseID, classID uuid.UUID) error {
	return r.link(ctx,
		`INSERT INTO sense_semantic_classes (sense_id, semantic_class_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		senseID, classID)
}

// AddCitedArtist records that the sense cites the artist in an example.
func (r *Repo) AddCitedArtist(ctx context.Context, senseID, artistID uuid.UUID) error {
	return r.link(ctx,
		`INSERT INTO sense_artists (sense_id, artist_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		senseID, artistID)
}

// AddExample links an example to the sense at the given position.
func (r *Repo) AddExample(ctx context.Context, senseID, exampleID uuid.UUID, position int) error {
	return r.link(ctx,
		`INSERT INTO sense_examples (sense_id, example_id, position) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		senseID, exampleID, position)
}

// SetSynSet points the sense at its synonym set.
func (r *Repo) SetSynSet(ctx context.Context, senseID, synSetID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err := q.Exec(ctx, `UPDATE senses SET syn_set_id = $2 WHERE id = $1`, senseID, synSetID)
	if err != nil {
		return postgres.MapError(err, "sense", senseID.String())
	}
	return nil
}

const insertXrefSQL = `
INSERT INTO xrefs (sense_id, word, type_code, type_label, target_id, target_lemma, target_slug, position, frequency)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// InsertXrefs bulk-inserts the sense's cross references using pgx.Batch.
func (r *Repo) InsertXrefs(ctx context.Context, senseID uuid.UUID, xrefs []domain.Xref) error {
	if len(xrefs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, x := range xrefs {
		batch.Queue(insertXrefSQL,
			senseID, x.Word, x.TypeCode, x.TypeLabel,
			x.TargetID, x.TargetLemma, x.TargetSlug, x.Position, x.Frequency)
	}
	return r.sendBatchExec(ctx, batch, "insert xrefs")
}

const insertCollocateSQL = `
INSERT INTO collocates (sense_id, lemma, target_id, frequency)
VALUES ($1, $2, $3, $4)`

// InsertCollocates bulk-inserts the sense's collocates using pgx.Batch.
func (r *Repo) InsertCollocates(ctx context.Context, senseID uuid.UUID, collocates []domain.Collocate) error {
	if len(collocates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range collocates {
		batch.Queue(insertCollocateSQL, senseID, c.Lemma, c.TargetID, c.Frequency)
	}
	return r.sendBatchExec(ctx, batch, "insert collocates")
}

func (r *Repo) link(ctx context.Context, sql string, args ...any) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("link sense relation: %w", err)
	}
	return nil
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
