package domain

import (
	"time"

	"github.com/google/uuid"
)

// Place is a geographic location. Natural key: Slug, derived from the
// comma-separated full name. WithinID points at the containing place,
// built by recursively stripping the leading name component
// ("Brentwood, New York, USA" is within "New York, USA" is within "USA").
type Place struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	FullName  string
	Latitude  *float64
	Longitude *float64
	WithinID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
