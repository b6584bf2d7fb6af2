package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultEndpoint = "https://nominatim.openstreetmap.org/search"

// NominatimClient resolves place names against a Nominatim-compatible
// geocoding endpoint.
type NominatimClient struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewNominatim creates a NominatimClient. An empty endpoint falls back to
// the public OSM instance; userAgent identifies the caller as that instance
// requires.
func NewNominatim(endpoint, userAgent string, logger *slog.Logger) *NominatimClient {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &NominatimClient{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "nominatim"),
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves fullName to coordinates. Returns nil, nil when the
// endpoint knows no such place.
func (c *NominatimClient) Geocode(ctx context.Context, fullName string) (*Coordinates, error) {
	q := url.Values{}
	q.Set("q", fullName)
	q.Set("format", "json")
	q.Set("limit", "1")
	reqURL := c.endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.log.DebugContext(ctx, "nominatim request", slog.String("place", fullName))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nominatim: read body: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("nominatim: decode json: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: parse lon %q: %w", results[0].Lon, err)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
