package geo

import (
	"context"
	"errors"
	"testing"
)

type countingGeocoder struct {
	calls   map[string]int
	results map[string]*Coordinates
	err     error
}

func (g *countingGeocoder) Geocode(_ context.Context, fullName string) (*Coordinates, error) {
	g.calls[fullName]++
	if g.err != nil {
		return nil, g.err
	}
	return g.results[fullName], nil
}

func TestCache_MemoizesResolved(t *testing.T) {
	t.Parallel()

	upstream := &countingGeocoder{
		calls: map[string]int{},
		results: map[string]*Coordinates{
			"Queens, New York, USA": {Latitude: 40.7282, Longitude: -73.7949},
		},
	}
	cache := NewCache(upstream)

	for i := 0; i < 3; i++ {
		coords, err := cache.Geocode(context.Background(), "Queens, New York, USA")
		if err != nil {
			t.Fatalf("Geocode: %v", err)
		}
		if coords == nil || coords.Latitude != 40.7282 {
			t.Fatalf("coords: got %+v", coords)
		}
	}
	if upstream.calls["Queens, New York, USA"] != 1 {
		t.Errorf("upstream calls: got %d, want 1", upstream.calls["Queens, New York, USA"])
	}
}

func TestCache_MemoizesUnknown(t *testing.T) {
	t.Parallel()

	upstream := &countingGeocoder{calls: map[string]int{}, results: map[string]*Coordinates{}}
	cache := NewCache(upstream)

	for i := 0; i < 2; i++ {
		coords, err := cache.Geocode(context.Background(), "Shaolin")
		if err != nil {
			t.Fatalf("Geocode: %v", err)
		}
		if coords != nil {
			t.Fatalf("coords: got %+v, want nil", coords)
		}
	}
	if upstream.calls["Shaolin"] != 1 {
		t.Errorf("upstream calls: got %d, want 1 (unknown answers cached)", upstream.calls["Shaolin"])
	}
}

func TestCache_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	upstream := &countingGeocoder{calls: map[string]int{}, err: errors.New("resolver down")}
	cache := NewCache(upstream)

	if _, err := cache.Geocode(context.Background(), "Compton, California, USA"); err == nil {
		t.Fatal("want error from upstream")
	}
	upstream.err = nil
	upstream.results = map[string]*Coordinates{"Compton, California, USA": {Latitude: 33.89, Longitude: -118.22}}

	coords, err := cache.Geocode(context.Background(), "Compton, California, USA")
	if err != nil {
		t.Fatalf("Geocode after recovery: %v", err)
	}
	if coords == nil {
		t.Fatal("coords: got nil after recovery")
	}
	if upstream.calls["Compton, California, USA"] != 2 {
		t.Errorf("upstream calls: got %d, want 2", upstream.calls["Compton, California, USA"])
	}
}
