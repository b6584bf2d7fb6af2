package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rhymebook/rhymebook-backend/internal/domain"
	"github.com/rhymebook/rhymebook-backend/internal/geo"
	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
	"github.com/rhymebook/rhymebook-backend/internal/ingest/extract"
)

// Options tune pipeline behavior per run.
type Options struct {
	// SkipUnchanged short-circuits an entry whose raw source snapshot
	// matches the persisted one. The default full rebuild is the safe
	// choice; skipping trusts that derived rows were not touched by hand.
	SkipUnchanged bool
}

// EntryResult reports the outcome of ingesting one entry.
type EntryResult struct {
	Slug    string
	Senses  int
	Skipped bool
}

// Pipeline ingests parsed entry documents. Each entry runs in its own
// transaction: either the entry and everything it owns land together, or
// nothing does.
type Pipeline struct {
	log      *slog.Logger
	txr      TxRunner
	repos    Repos
	geocoder geo.Geocoder
	opts     Options
}

// NewPipeline creates a Pipeline. A nil geocoder leaves places without
// coordinates.
func NewPipeline(log *slog.Logger, txr TxRunner, repos Repos, geocoder geo.Geocoder, opts Options) *Pipeline {
	if geocoder == nil {
		geocoder = geo.NoopGeocoder{}
	}
	return &Pipeline{
		log:      log,
		txr:      txr,
		repos:    repos,
		geocoder: geo.NewCache(geocoder),
		opts:     opts,
	}
}

// IngestEntry parses one raw entry node and persists it transactionally.
func (p *Pipeline) IngestEntry(ctx context.Context, n doctree.Node) (EntryResult, error) {
	rec, err := extract.ParseEntry(n)
	if err != nil {
		return EntryResult{}, err
	}

	if p.opts.SkipUnchanged {
		existing, err := p.repos.Entries.GetBySlug(ctx, rec.Slug)
		switch {
		case err == nil && existing.RawSource == rec.Snapshot:
			p.log.Debug("entry unchanged, skipping", slog.String("slug", rec.Slug))
			return EntryResult{Slug: rec.Slug, Skipped: true}, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return EntryResult{}, fmt.Errorf("check entry snapshot: %w", err)
		}
	}

	result := EntryResult{Slug: rec.Slug}
	err = p.txr.RunInTx(ctx, func(ctx context.Context) error {
		senses, err := p.persistEntry(ctx, rec)
		if err != nil {
			return err
		}
		result.Senses = senses
		return nil
	})
	if err != nil {
		return EntryResult{}, err
	}
	return result, nil
}

func (p *Pipeline) persistEntry(ctx context.Context, rec extract.EntryRecord) (int, error) {
	entryID, err := p.repos.Entries.Upsert(ctx, domain.Entry{
		Slug:      rec.Slug,
		Headword:  rec.Headword,
		SortKey:   rec.SortKey,
		Letter:    rec.Letter,
		Publish:   rec.Publish,
		RawSource: rec.Snapshot,
	})
	if err != nil {
		return 0, fmt.Errorf("upsert entry: %w", err)
	}

	forms := make([]domain.Form, len(rec.Forms))
	for i, f := range rec.Forms {
		forms[i] = domain.Form{Slug: f.Slug, Label: f.Label, Frequency: f.Frequency}
	}
	if err := p.repos.Entries.ReplaceForms(ctx, entryID, forms); err != nil {
		return 0, fmt.Errorf("replace forms: %w", err)
	}

	var senseIDs []uuid.UUID
	for _, lex := range rec.Lexemes {
		for _, sense := range lex.Senses {
			senseID, err := p.persistSense(ctx, sense)
			if err != nil {
				return 0, fmt.Errorf("sense %s: %w", sense.XMLID, err)
			}
			senseIDs = append(senseIDs, senseID)
		}
	}
	if err := p.repos.Entries.ReplaceSenses(ctx, entryID, senseIDs); err != nil {
		return 0, fmt.Errorf("replace senses: %w", err)
	}

	return len(senseIDs), nil
}

func (p *Pipeline) persistSense(ctx context.Context, rec extract.SenseRecord) (uuid.UUID, error) {
	senseID, err := p.repos.Senses.Upsert(ctx, domain.Sense{
		XMLID:        rec.XMLID,
		Headword:     rec.Headword,
		PartOfSpeech: rec.PartOfSpeech,
		Definition:   rec.Definition,
		Etymology:    rec.Etymology,
		Notes:        rec.Notes,
		Publish:      rec.Publish,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert: %w", err)
	}

	// Everything the sense owns is rebuilt from the current source.
	if err := p.repos.Senses.PurgeRelations(ctx, senseID); err != nil {
		return uuid.Nil, err
	}

	for _, d := range rec.Domains {
		tagID, err := p.repos.Taxonomy.UpsertDomain(ctx, domain.Domain{Slug: d.Slug, Name: d.Name})
		if err != nil {
			return uuid.Nil, fmt.Errorf("upsert domain %s: %w", d.Slug, err)
		}
		if err := p.repos.Senses.AddDomain(ctx, senseID, tagID); err != nil {
			return uuid.Nil, err
		}
	}
	for _, reg := range rec.Regions {
		tagID, err := p.repos.Taxonomy.UpsertRegion(ctx, domain.Region{Slug: reg.Slug, Name: reg.Name})
		if err != nil {
			return uuid.Nil, fmt.Errorf("upsert region %s: %w", reg.Slug, err)
		}
		if err := p.repos.Senses.AddRegion(ctx, senseID, tagID); err != nil {
			return uuid.Nil, err
		}
	}
	for _, sc := range rec.SemanticClasses {
		tagID, err := p.repos.Taxonomy.UpsertSemanticClass(ctx, domain.SemanticClass{Slug: sc.Slug, Name: sc.Name})
		if err != nil {
			return uuid.Nil, fmt.Errorf("upsert semantic class %s: %w", sc.Slug, err)
		}
		if err := p.repos.Senses.AddSemanticClass(ctx, senseID, tagID); err != nil {
			return uuid.Nil, err
		}
	}
	if rec.SynSet != nil {
		setID, err := p.repos.Taxonomy.UpsertSynSet(ctx, domain.SynSet{Slug: rec.SynSet.Slug, Name: rec.SynSet.Name})
		if err != nil {
			return uuid.Nil, fmt.Errorf("upsert syn set %s: %w", rec.SynSet.Slug, err)
		}
		if err := p.repos.Senses.SetSynSet(ctx, senseID, setID); err != nil {
			return uuid.Nil, err
		}
	}

	xrefs := make([]domain.Xref, len(rec.Xrefs))
	for i, x := range rec.Xrefs {
		xrefs[i] = domain.Xref{
			Word:        x.Word,
			TypeCode:    x.TypeCode,
			TypeLabel:   x.TypeLabel,
			TargetID:    x.TargetID,
			TargetLemma: x.TargetLemma,
			TargetSlug:  x.TargetSlug,
			Position:    x.Position,
			Frequency:   x.Frequency,
		}
	}
	if err := p.repos.Senses.InsertXrefs(ctx, senseID, xrefs); err != nil {
		return uuid.Nil, err
	}

	collocates := make([]domain.Collocate, len(rec.Collocates))
	for i, c := range rec.Collocates {
		collocates[i] = domain.Collocate{Lemma: c.Lemma, TargetID: c.TargetID, Frequency: c.Frequency}
	}
	if err := p.repos.Senses.InsertCollocates(ctx, senseID, collocates); err != nil {
		return uuid.Nil, err
	}

	for pos, ex := range rec.Examples {
		if err := p.persistExample(ctx, senseID, pos, ex); err != nil {
			return uuid.Nil, fmt.Errorf("example %q: %w", ex.SongTitle, err)
		}
	}

	return senseID, nil
}

func (p *Pipeline) persistExample(ctx context.Context, senseID uuid.UUID, position int, rec extract.ExampleRecord) error {
	exampleID, err := p.repos.Examples.Upsert(ctx, domain.Example{
		SongTitle:           rec.SongTitle,
		ArtistName:          rec.ArtistName,
		Album:               rec.Album,
		ReleaseDate:         rec.ReleaseDate,
		ReleaseDateVerbatim: rec.ReleaseDateVerbatim,
		Lyric:               rec.Lyric,
	})
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	if err := p.repos.Examples.PurgeRelations(ctx, exampleID); err != nil {
		return err
	}

	primaryIDs, err := p.persistCredits(ctx, exampleID, senseID, rec.PrimaryArtists, false)
	if err != nil {
		return err
	}
	featuredIDs, err := p.persistCredits(ctx, exampleID, senseID, rec.FeaturedArtists, true)
	if err != nil {
		return err
	}

	song := rec.Song
	songID, err := p.repos.Songs.Upsert(ctx, domain.Song{
		Slug:         song.Slug,
		Title:        song.Title,
		Album:        song.Album,
		ArtistName:   song.ArtistName,
		ReleaseDate:  song.ReleaseDate,
		ExternalID:   optString(song.ExternalID),
		StreamingURI: optString(song.StreamingURI),
	})
	if err != nil {
		return fmt.Errorf("upsert song %s: %w", song.Slug, err)
	}
	if err := p.repos.Songs.ReplaceArtists(ctx, songID, primaryIDs, featuredIDs); err != nil {
		return err
	}
	if err := p.repos.Examples.SetSong(ctx, exampleID, songID); err != nil {
		return err
	}

	rhymes := make([]domain.ExampleRhyme, len(rec.Rhymes))
	for i, rh := range rec.Rhymes {
		rhymes[i] = domain.ExampleRhyme{
			WordOne:       rh.WordOne,
			WordTwo:       rh.WordTwo,
			PositionOne:   rh.PositionOne,
			PositionTwo:   rh.PositionTwo,
			TargetSenseID: optString(rh.TargetID),
		}
	}
	if err := p.repos.Examples.InsertRhymes(ctx, exampleID, rhymes); err != nil {
		return err
	}

	links := make([]domain.LyricLink, len(rec.LyricLinks))
	for i, l := range rec.LyricLinks {
		if !l.Located {
			p.log.Warn("lyric link text not found in lyric",
				slog.String("text", l.Text),
				slog.String("song", rec.SongTitle))
		}
		links[i] = domain.LyricLink{
			Text:        l.Text,
			LinkType:    l.LinkType,
			TargetLemma: l.TargetLemma,
			TargetSlug:  l.TargetSlug,
			Position:    l.Position,
		}
	}
	if err := p.repos.Examples.InsertLyricLinks(ctx, exampleID, links); err != nil {
		return err
	}

	for _, en := range rec.Entities {
		entityID, err := p.repos.Entities.Upsert(ctx, domain.NamedEntity{
			Slug:       en.Slug,
			EntityType: en.EntityType,
			Name:       en.Name,
			PrefLabel:  en.PrefLabel,
		})
		if err != nil {
			return fmt.Errorf("upsert entity %s: %w", en.Slug, err)
		}
		if err := p.repos.Examples.AddEntity(ctx, exampleID, entityID); err != nil {
			return err
		}
	}

	return p.repos.Senses.AddExample(ctx, senseID, exampleID, position)
}

// persistCredits upserts artist credits, resolves origins into the place
// chain, and records each artist as cited by the sense.
func (p *Pipeline) persistCredits(ctx context.Context, exampleID, senseID uuid.UUID, credits []extract.ArtistRecord, featured bool) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(credits))
	for _, a := range credits {
		artistID, err := p.repos.Artists.Upsert(ctx, domain.Artist{Slug: a.Slug, Name: a.Name})
		if err != nil {
			return nil, fmt.Errorf("upsert artist %s: %w", a.Slug, err)
		}
		if a.Origin != "" {
			placeID, err := p.persistPlaceChain(ctx, a.Origin)
			if err != nil {
				return nil, fmt.Errorf("artist %s origin: %w", a.Slug, err)
			}
			if err := p.repos.Artists.SetOrigin(ctx, artistID, placeID); err != nil {
				return nil, err
			}
		}
		if err := p.repos.Examples.AddArtist(ctx, exampleID, artistID, featured); err != nil {
			return nil, err
		}
		if err := p.repos.Senses.AddCitedArtist(ctx, senseID, artistID); err != nil {
			return nil, err
		}
		ids = append(ids, artistID)
	}
	return ids, nil
}

// persistPlaceChain decomposes a comma-separated full place name one level
// at a time ("Queens, New York, USA" → Queens within New York within USA),
// upserting each level and returning the id of the innermost place.
// Geocoding failures are reported and skipped: a place without coordinates
// is better than a lost entry.
func (p *Pipeline) persistPlaceChain(ctx context.Context, fullName string) (uuid.UUID, error) {
	rec, err := extract.ParsePlaceName(fullName)
	if err != nil {
		return uuid.Nil, err
	}

	place, err := p.repos.Places.Upsert(ctx, domain.Place{
		Slug:     rec.Slug,
		Name:     rec.Name,
		FullName: rec.FullName,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert place %s: %w", rec.Slug, err)
	}

	if place.Latitude == nil {
		coords, err := p.geocoder.Geocode(ctx, rec.FullName)
		if err != nil {
			p.log.Warn("geocode failed",
				slog.String("place", rec.FullName),
				slog.String("error", err.Error()))
		} else if coords != nil {
			if err := p.repos.Places.SetCoordinates(ctx, place.ID, coords.Latitude, coords.Longitude); err != nil {
				return uuid.Nil, err
			}
		}
	}

	if rec.ParentFullName != "" {
		parentID, err := p.persistPlaceChain(ctx, rec.ParentFullName)
		if err != nil {
			return uuid.Nil, err
		}
		if err := p.repos.Places.SetWithin(ctx, place.ID, parentID); err != nil {
			return uuid.Nil, err
		}
	}

	return place.ID, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
