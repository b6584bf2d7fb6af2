package domain

import (
	"time"

	"github.com/google/uuid"
)

// Artist is a credited performer. Natural key: Slug, derived from the name.
type Artist struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	OriginID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Song is a released track. Natural key: Slug, derived from
// "artist name + title".
type Song struct {
	ID           uuid.UUID
	Slug         string
	Title        string
	Album        string
	ArtistName   string
	ReleaseDate  time.Time
	ExternalID   *string
	StreamingURI *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
