package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"loadplanner/internal/ports"
)

// GoogleProvider implements ports.GeocodingProvider against the Google
// Geocoding API, a direct port of
// original_source/backend/app/geocode_service.py's
// google_geocode_query/_confidence_from_google, built on a plain
// http.Client with a 12 s timeout. Each Geocode call makes one request;
// failed requests are not retried.
type GoogleProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

var _ ports.GeocodingProvider = (*GoogleProvider)(nil)

func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{
		session: &http.Client{Timeout: 12 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/geocode/json",
	}
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types         []string `json:"types"`
		PartialMatch  bool     `json:"partial_match"`
		FormattedAddr string   `json:"formatted_address"`
	} `json:"results"`
}

// Geocode resolves one free-text query. An empty API key or any
// transport/status failure is surfaced as an error — the caller
// (internal/geocode's Resolve) treats that as a per-address
// GeocodeFailed, never a fatal request error.
func (g *GoogleProvider) Geocode(ctx context.Context, query string) (ports.GeocodeResult, error) {
	if g.apiKey == "" {
		return ports.GeocodeResult{}, errors.New("google geocode: api key is empty")
	}
	if strings.TrimSpace(query) == "" {
		return ports.GeocodeResult{}, errors.New("google geocode: empty query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("google geocode: build request: %w", err)
	}
	q := req.URL.Query()
	q.Set("address", query)
	q.Set("key", g.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := g.session.Do(req)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("google geocode: request %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.GeocodeResult{}, fmt.Errorf("google geocode: unexpected status %d", resp.StatusCode)
	}

	var decoded googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("google geocode: decode response: %w", err)
	}

	if strings.ToUpper(decoded.Status) != "OK" || len(decoded.Results) == 0 {
		status := decoded.Status
		if status == "" {
			status = "NO_RESULTS"
		}
		return ports.GeocodeResult{}, fmt.Errorf("google geocode: %s", status)
	}

	first := decoded.Results[0]
	level := matchLevelFromTypes(first.Types)
	confidence := Confidence(level, first.PartialMatch)

	return ports.GeocodeResult{
		Latitude:   first.Geometry.Location.Lat,
		Longitude:  first.Geometry.Location.Lng,
		Confidence: confidence,
		Provider:   "google",
		Formatted:  first.FormattedAddr,
	}, nil
}

// matchLevelFromTypes buckets Google's result "types" the same way
// _confidence_from_google's if/elif chain does.
func matchLevelFromTypes(types []string) MatchLevel {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	switch {
	case set["street_address"] || set["premise"] || set["subpremise"]:
		return MatchStreet
	case set["route"] || set["intersection"]:
		return MatchRoute
	case set["locality"] || set["administrative_area_level_1"]:
		return MatchLocality
	default:
		return MatchOther
	}
}
