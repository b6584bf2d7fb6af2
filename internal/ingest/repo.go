// Package ingest orchestrates dictionary ingestion: converted entry
// documents are parsed, upserted, and their relationships rebuilt, one
// transaction per entry.
package ingest

import (
	"context"

	"github.com/google/uuid"

	"github.com/rhymebook/rhymebook-backend/internal/domain"
)

// TxRunner runs a function within a database transaction.
// Implemented by postgres.TxManager.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// EntryRepo is the entry persistence contract consumed by the pipeline.
// All repo contracts use only domain types — no adapter imports.
// Implemented by entry.Repo.
type EntryRepo interface {
	Upsert(ctx context.Context, e domain.Entry) (uuid.UUID, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Entry, error)
	ReplaceForms(ctx context.Context, entryID uuid.UUID, forms []domain.Form) error
	ReplaceSenses(ctx context.Context, entryID uuid.UUID, senseIDs []uuid.UUID) error
}

// SenseRepo is implemented by sense.Repo.
type SenseRepo interface {
	Upsert(ctx context.Context, s domain.Sense) (uuid.UUID, error)
	PurgeRelations(ctx context.Context, senseID uuid.UUID) error
	AddDomain(ctx context.Context, senseID, domainID uuid.UUID) error
	AddRegion(ctx context.Context, senseID, regionID uuid.UUID) error
	AddSemanticClass(ctx context.Context, senseID, classID uuid.UUID) error
	AddCitedArtist(ctx context.Context, senseID, artistID uuid.UUID) error
	AddExample(ctx context.Context, senseID, exampleID uuid.UUID, position int) error
	SetSynSet(ctx context.Context, senseID, synSetID uuid.UUID) error
	InsertXrefs(ctx context.Context, senseID uuid.UUID, xrefs []domain.Xref) error
	InsertCollocates(ctx context.Context, senseID uuid.UUID, collocates []domain.Collocate) error
}

// ExampleRepo is implemented by example.Repo.
type ExampleRepo interface {
	Upsert(ctx context.Context, ex domain.Example) (uuid.UUID, error)
	PurgeRelations(ctx context.Context, exampleID uuid.UUID) error
	SetSong(ctx context.Context, exampleID, songID uuid.UUID) error
	AddArtist(ctx context.Context, exampleID, artistID uuid.UUID, featured bool) error
	AddEntity(ctx context.Context, exampleID, entityID uuid.UUID) error
	InsertRhymes(ctx context.Context, exampleID uuid.UUID, rhymes []domain.ExampleRhyme) error
	InsertLyricLinks(ctx context.Context, exampleID uuid.UUID, links []domain.LyricLink) error
}

// SongRepo is implemented by song.Repo.
type SongRepo interface {
	Upsert(ctx context.Context, s domain.Song) (uuid.UUID, error)
	ReplaceArtists(ctx context.Context, songID uuid.UUID, primary, featured []uuid.UUID) error
}

// ArtistRepo is implemented by artist.Repo.
type ArtistRepo interface {
	Upsert(ctx context.Context, a domain.Artist) (uuid.UUID, error)
	SetOrigin(ctx context.Context, artistID, placeID uuid.UUID) error
}

// PlaceRepo is implemented by place.Repo.
type PlaceRepo interface {
	Upsert(ctx context.Context, p domain.Place) (*domain.Place, error)
	SetCoordinates(ctx context.Context, placeID uuid.UUID, lat, lon float64) error
	SetWithin(ctx context.Context, placeID, withinID uuid.UUID) error
}

// TaxonomyRepo is implemented by taxonomy.Repo.
type TaxonomyRepo interface {
	UpsertDomain(ctx context.Context, d domain.Domain) (uuid.UUID, error)
	UpsertRegion(ctx context.Context, r domain.Region) (uuid.UUID, error)
	UpsertSemanticClass(ctx context.Context, sc domain.SemanticClass) (uuid.UUID, error)
	UpsertSynSet(ctx context.Context, ss domain.SynSet) (uuid.UUID, error)
}

// EntityRepo is implemented by namedentity.Repo.
type EntityRepo interface {
	Upsert(ctx context.Context, e domain.NamedEntity) (uuid.UUID, error)
}

// StatsRepo is implemented by stats.Repo.
type StatsRepo interface {
	Collect(ctx context.Context) (*domain.StatsSnapshot, error)
	InsertSnapshot(ctx context.Context, snap *domain.StatsSnapshot) error
}

// Repos bundles every persistence contract the pipeline needs.
type Repos struct {
	Entries  EntryRepo
	Senses   SenseRepo
	Examples ExampleRepo
	Songs    SongRepo
	Artists  ArtistRepo
	Places   PlaceRepo
	Taxonomy TaxonomyRepo
	Entities EntityRepo
}
