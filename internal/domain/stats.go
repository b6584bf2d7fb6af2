package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatsSnapshot is a persisted aggregate count record, recomputed after a
// full directory load.
type StatsSnapshot struct {
	ID               uuid.UUID
	TotalEntries     int
	PublishedEntries int
	TotalSenses      int
	TotalExamples    int
	TotalArtists     int
	TotalPlaces      int
	TotalSongs       int
	TotalDomains     int
	TakenAt          time.Time
}
