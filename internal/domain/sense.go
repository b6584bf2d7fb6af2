package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sense is one meaning of a headword. Natural key: XMLID, the legacy
// external identifier carried by the source document.
type Sense struct {
	ID           uuid.UUID
	XMLID        string
	Headword     string
	PartOfSpeech string
	Definition   string
	Etymology    *string
	Notes        *string
	Publish      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Examples        []Example
	Domains         []Domain
	Regions         []Region
	SemanticClasses []SemanticClass
	SynSet          *SynSet
	Xrefs           []Xref
	Collocates      []Collocate
	CitedArtists    []Artist
}

// Xref is a typed cross-reference from a sense to another headword or
// sense. Natural key: (word, type code, target id, target lemma, target
// slug) within the owning sense.
type Xref struct {
	ID          uuid.UUID
	SenseID     uuid.UUID
	Word        string
	TypeCode    string
	TypeLabel   string
	TargetID    string
	TargetLemma string
	TargetSlug  string
	Position    *int
	Frequency   *int
}

// Collocate is a word that frequently co-occurs with the owning sense.
// Natural key: (lemma, owning sense, target id).
type Collocate struct {
	ID        uuid.UUID
	SenseID   uuid.UUID
	Lemma     string
	TargetID  string
	Frequency int
}
