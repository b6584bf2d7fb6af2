package domain

import (
	"time"

	"github.com/google/uuid"
)

// Domain is a topical category (drugs, money, ...). Natural key: Slug.
// Name is the camelCase source token expanded to words.
type Domain struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Region is a geographic usage region (westCoast, dirtySouth, ...).
// Natural key: Slug.
type Region struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SemanticClass groups senses by meaning class. Natural key: Slug.
type SemanticClass struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SynSet links a sense into a synonym set. Natural key: Slug, derived from
// the snake_case target id; Name is the id expanded to words.
type SynSet struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NamedEntity is a person, place, group, or work referenced inside a
// lyric. Natural key: (entity type, preferred-label slug).
type NamedEntity struct {
	ID         uuid.UUID
	Slug       string
	EntityType string
	Name       string
	PrefLabel  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
