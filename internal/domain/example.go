package domain

import (
	"time"

	"github.com/google/uuid"
)

// Example is a lyric citation. Natural key: the composite of song title,
// artist name, release date (normalized and verbatim), album, and lyric
// text — the source carries no stable identifier for citations.
type Example struct {
	ID                  uuid.UUID
	SongTitle           string
	ArtistName          string
	Album               string
	ReleaseDate         time.Time
	ReleaseDateVerbatim string
	Lyric               string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	SongID          *uuid.UUID
	PrimaryArtists  []Artist
	FeaturedArtists []Artist
	Rhymes          []ExampleRhyme
	LyricLinks      []LyricLink
	Entities        []NamedEntity
}

// ExampleRhyme records a rhyming word pair inside an example's lyric.
// Natural key: (word one, word two, position one, position two) within the
// owning example.
type ExampleRhyme struct {
	ID            uuid.UUID
	ExampleID     uuid.UUID
	WordOne       string
	WordTwo       string
	PositionOne   int
	PositionTwo   int
	TargetSenseID *string
}

// LyricLink ties a character span in an example's lyric to an artist,
// sense, rhyme, or named entity. Natural key: (text, link type, target
// lemma, target slug, position) within the owning example. Position is the
// confirmed character offset into the lyric.
type LyricLink struct {
	ID          uuid.UUID
	ExampleID   uuid.UUID
	Text        string
	LinkType    string
	TargetLemma string
	TargetSlug  string
	Position    int
}
