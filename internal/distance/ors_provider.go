package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"loadplanner/internal/domain"
	"loadplanner/internal/ports"
)

// ORSProvider implements ports.DistanceMatrixProvider against the
// OpenRouteService matrix API, adapted from
// erenceh-delivery-route-api/internal/adapters/distance/ors_matrix.go and
// ors_distance_provider.go. Geocoding has already happened upstream
// (internal/geocode owns that), so this provider only ever receives
// resolved coordinates — it has no geocode-cache plumbing of its own.
type ORSProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

var _ ports.DistanceMatrixProvider = (*ORSProvider)(nil)

func NewORSProvider(apiKey string) *ORSProvider {
	return &ORSProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}
}

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

func (o *ORSProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (domain.DistanceRecord, error) {
	rows, err := o.GetMatrix(ctx, []domain.Coordinates{origin}, []domain.Coordinates{destination})
	if err != nil {
		return domain.DistanceRecord{}, err
	}
	if len(rows) != 1 || len(rows[0]) != 1 {
		return domain.DistanceRecord{}, errors.New("ORS get distance: unexpected matrix shape")
	}
	return rows[0][0], nil
}

// GetMatrix requests one sources x destinations block from the ORS
// matrix endpoint. apiKey must be non-empty; a caller with no ORS
// subscription should wire in HaversineProvider instead.
func (o *ORSProvider) GetMatrix(ctx context.Context, origins, destinations []domain.Coordinates) ([][]domain.DistanceRecord, error) {
	if o.apiKey == "" {
		return nil, errors.New("ORS get matrix: api key is empty")
	}
	if len(origins) == 0 || len(destinations) == 0 {
		return nil, nil
	}

	locations := make([][]float64, 0, len(origins)+len(destinations))
	sources := make([]int, len(origins))
	for i, o2 := range origins {
		sources[i] = len(locations)
		locations = append(locations, o2.CoordsToList())
	}
	dests := make([]int, len(destinations))
	for i, d := range destinations {
		dests[i] = len(locations)
		locations = append(locations, d.CoordsToList())
	}

	body := matrixRequest{
		Locations:    locations,
		Sources:      sources,
		Destinations: dests,
		Metrics:      []string{"distance", "duration"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("ORS get matrix: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("ORS get matrix: request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("ORS get matrix: decode response: %w", err)
	}
	if len(mr.Distances) != len(origins) || len(mr.Durations) != len(origins) {
		return nil, fmt.Errorf("ORS get matrix: expected %d source rows, got distances=%d durations=%d",
			len(origins), len(mr.Distances), len(mr.Durations))
	}

	out := make([][]domain.DistanceRecord, len(origins))
	for i := range origins {
		row := make([]domain.DistanceRecord, len(destinations))
		distRow, durRow := mr.Distances[i], mr.Durations[i]
		if len(distRow) != len(destinations) || len(durRow) != len(destinations) {
			return nil, fmt.Errorf("ORS get matrix: row %d length mismatch", i)
		}
		for j := range destinations {
			if distRow[j] == nil || durRow[j] == nil {
				return nil, fmt.Errorf("ORS get matrix: nil metric at [%d][%d]", i, j)
			}
			row[j] = domain.DistanceRecord{
				Provider: "ors",
				Miles:    *distRow[j] * kmToMiles / 1000,
				Minutes:  *durRow[j] / 60,
			}
		}
		out[i] = row
	}
	return out, nil
}
