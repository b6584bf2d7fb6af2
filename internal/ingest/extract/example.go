package extract

import (
	"strings"
	"time"

	"github.com/rhymebook/rhymebook-backend/internal/domain"
	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
)

// ExampleRecord is the parsed form of one lyric citation.
type ExampleRecord struct {
	SongTitle           string
	Album               string
	ArtistName          string
	ReleaseDate         time.Time
	ReleaseDateVerbatim string
	Lyric               string

	Song            SongRecord
	PrimaryArtists  []ArtistRecord
	FeaturedArtists []ArtistRecord
	Rhymes          []RhymeRecord
	Entities        []EntityRecord
	LyricLinks      []LyricLinkRecord
}

// SongRecord is the parsed song a citation belongs to.
type SongRecord struct {
	Slug         string
	Title        string
	Album        string
	ArtistName   string
	ReleaseDate  time.Time
	ExternalID   string
	StreamingURI string
}

// ArtistRecord is a parsed artist credit. Origin, when present, is the
// comma-separated full name of the artist's origin place.
type ArtistRecord struct {
	Name   string
	Slug   string
	Origin string
}

// RhymeRecord is a parsed rhyming word pair. Positions are character
// offsets into the lyric, reconciled per ConfirmPosition.
type RhymeRecord struct {
	WordOne     string
	WordTwo     string
	PositionOne int
	PositionTwo int
	TargetID    string
}

// EntityRecord is a parsed named entity mentioned in a lyric.
type EntityRecord struct {
	Name       string
	EntityType string
	PrefLabel  string
	Slug       string
}

// LyricLinkRecord is a parsed span annotation in a lyric. Located is
// false when the link text could not be found in the lyric at all; the
// claimed position is kept and the condition is reported, not fatal.
type LyricLinkRecord struct {
	Text        string
	LinkType    string
	TargetLemma string
	TargetSlug  string
	Position    int
	Located     bool
}

// ParseExample extracts an ExampleRecord from a raw example node.
func ParseExample(n doctree.Node) (ExampleRecord, error) {
	songTitle, err := requireChildText(n, "example", "songTitle")
	if err != nil {
		return ExampleRecord{}, err
	}
	lyric, err := requireChildText(n, "example", "lyric")
	if err != nil {
		return ExampleRecord{}, err
	}
	dateRaw, err := requireChildText(n, "example", "date")
	if err != nil {
		return ExampleRecord{}, err
	}
	released, err := domain.NormalizeReleaseDate(dateRaw)
	if err != nil {
		return ExampleRecord{}, malformedField("example", "date", err.Error())
	}

	album, _ := n.ChildText("album")
	album = strings.TrimSpace(album)

	artistNodes := n.Children("artist")
	if len(artistNodes) == 0 {
		return ExampleRecord{}, missingField("example", "artist")
	}

	rec := ExampleRecord{
		SongTitle:           songTitle,
		Album:               album,
		ReleaseDate:         released,
		ReleaseDateVerbatim: dateRaw,
		Lyric:               lyric,
	}

	for _, an := range artistNodes {
		artist, err := ParseArtist(an)
		if err != nil {
			return ExampleRecord{}, err
		}
		rec.PrimaryArtists = append(rec.PrimaryArtists, artist)
	}
	for _, fn := range n.Children("feat") {
		artist, err := ParseArtist(fn)
		if err != nil {
			return ExampleRecord{}, err
		}
		rec.FeaturedArtists = append(rec.FeaturedArtists, artist)
	}

	names := make([]string, len(rec.PrimaryArtists))
	for i, a := range rec.PrimaryArtists {
		names[i] = a.Name
	}
	rec.ArtistName = strings.Join(names, ", ")

	rec.Song = SongRecord{
		Slug:        domain.Slugify(rec.ArtistName + " " + songTitle),
		Title:       songTitle,
		Album:       album,
		ArtistName:  rec.ArtistName,
		ReleaseDate: released,
	}
	if ref, ok := n.Child("songRef"); ok {
		rec.Song.ExternalID = optAttr(ref, "id")
		rec.Song.StreamingURI = optAttr(ref, "uri")
	}

	for _, rn := range containerChildren(n, "rhymes", "rhyme") {
		rhyme, err := parseRhyme(rn, lyric)
		if err != nil {
			return ExampleRecord{}, err
		}
		rec.Rhymes = append(rec.Rhymes, rhyme)
	}

	for _, en := range containerChildren(n, "entities", "entity") {
		entity, err := ParseEntity(en)
		if err != nil {
			return ExampleRecord{}, err
		}
		rec.Entities = append(rec.Entities, entity)
	}

	for _, lnk := range containerChildren(n, "lyricLinks", "lyricLink") {
		link, err := parseLyricLink(lnk, lyric)
		if err != nil {
			return ExampleRecord{}, err
		}
		rec.LyricLinks = append(rec.LyricLinks, link)
	}

	return rec, nil
}

// ParseArtist extracts an ArtistRecord from a credit node.
func ParseArtist(n doctree.Node) (ArtistRecord, error) {
	name, err := requireContent(n, "artist")
	if err != nil {
		return ArtistRecord{}, err
	}
	return ArtistRecord{
		Name:   name,
		Slug:   domain.Slugify(name),
		Origin: optAttr(n, "origin"),
	}, nil
}

// ParseEntity extracts an EntityRecord. The preferred label defaults to
// the display name when the source does not carry one.
func ParseEntity(n doctree.Node) (EntityRecord, error) {
	name, err := requireContent(n, "entity")
	if err != nil {
		return EntityRecord{}, err
	}
	entityType, err := requireAttr(n, "entity", "type")
	if err != nil {
		return EntityRecord{}, err
	}
	pref := optAttr(n, "prefLabel")
	if pref == "" {
		pref = name
	}
	return EntityRecord{
		Name:       name,
		EntityType: entityType,
		PrefLabel:  pref,
		Slug:       domain.Slugify(pref),
	}, nil
}

// parseRhyme extracts a RhymeRecord, reconciling both word positions
// against the lyric.
func parseRhyme(n doctree.Node, lyric string) (RhymeRecord, error) {
	wordOne, err := requireAttr(n, "rhyme", "wordOne")
	if err != nil {
		return RhymeRecord{}, err
	}
	wordTwo, err := requireAttr(n, "rhyme", "wordTwo")
	if err != nil {
		return RhymeRecord{}, err
	}
	posOne, err := requireIntAttr(n, "rhyme", "posOne")
	if err != nil {
		return RhymeRecord{}, err
	}
	posTwo, err := requireIntAttr(n, "rhyme", "posTwo")
	if err != nil {
		return RhymeRecord{}, err
	}

	posOne, _ = ConfirmPosition(lyric, wordOne, posOne)
	posTwo, _ = ConfirmPosition(lyric, wordTwo, posTwo)

	return RhymeRecord{
		WordOne:     wordOne,
		WordTwo:     wordTwo,
		PositionOne: posOne,
		PositionTwo: posTwo,
		TargetID:    optAttr(n, "target"),
	}, nil
}

// parseLyricLink extracts a LyricLinkRecord and reconciles its claimed
// position against the lyric.
func parseLyricLink(n doctree.Node, lyric string) (LyricLinkRecord, error) {
	text, err := requireContent(n, "lyricLink")
	if err != nil {
		return LyricLinkRecord{}, err
	}
	linkType, err := requireAttr(n, "lyricLink", "type")
	if err != nil {
		return LyricLinkRecord{}, err
	}
	claimed, err := requireIntAttr(n, "lyricLink", "position")
	if err != nil {
		return LyricLinkRecord{}, err
	}

	lemma := optAttr(n, "lemma")
	position, located := ConfirmPosition(lyric, text, claimed)

	return LyricLinkRecord{
		Text:        text,
		LinkType:    linkType,
		TargetLemma: lemma,
		TargetSlug:  targetSlug(optAttr(n, "target"), lemma, optAttr(n, "prefLabel"), text),
		Position:    position,
		Located:     located,
	}, nil
}
