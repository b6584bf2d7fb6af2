// Package geo defines the external geocoding capability the ingestion
// pipeline consumes. Resolution itself happens outside this module.
package geo

import "context"

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder resolves a full place name ("Queens, New York, USA") to
// coordinates. A nil result with a nil error means the place is unknown
// to the resolver; that is an expected outcome, not a failure.
type Geocoder interface {
	Geocode(ctx context.Context, fullName string) (*Coordinates, error)
}

// NoopGeocoder resolves nothing. Used when no resolver is configured:
// places are still persisted, just without coordinates.
type NoopGeocoder struct{}

func (NoopGeocoder) Geocode(context.Context, string) (*Coordinates, error) {
	return nil, nil
}

// Cache memoizes Geocoder results for the duration of one ingestion run,
// including unknown-place answers, so each distinct full name costs at
// most one upstream call. Not safe for concurrent use; the pipeline runs
// entries sequentially.
type Cache struct {
	next    Geocoder
	results map[string]*Coordinates
}

// NewCache wraps a Geocoder with run-scoped memoization.
func NewCache(next Geocoder) *Cache {
	return &Cache{
		next:    next,
		results: make(map[string]*Coordinates),
	}
}

// Geocode resolves through the cache. Upstream errors are not cached:
// a transient failure should not pin the name to "unknown" for the rest
// of the run.
func (c *Cache) Geocode(ctx context.Context, fullName string) (*Coordinates, error) {
	if coords, ok := c.results[fullName]; ok {
		return coords, nil
	}
	coords, err := c.next.Geocode(ctx, fullName)
	if err != nil {
		return nil, err
	}
	c.results[fullName] = coords
	return coords, nil
}
