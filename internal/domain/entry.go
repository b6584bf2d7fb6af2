package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a dictionary headword. Natural key: Slug, derived from the
// headword. RawSource keeps the original XML snapshot for change detection
// on re-ingestion.
type Entry struct {
	ID        uuid.UUID
	Slug      string
	Headword  string
	SortKey   string
	Letter    string
	Publish   bool
	RawSource string
	CreatedAt time.Time
	UpdatedAt time.Time

	Forms  []Form
	Senses []Sense
}

// Form is a spelling variant of a headword. Natural key: Slug, derived
// from the label.
type Form struct {
	ID        uuid.UUID
	Slug      string
	Label     string
	Frequency int
	CreatedAt time.Time
	UpdatedAt time.Time
}
