package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadplanner/internal/domain"
	"loadplanner/internal/ports"
)

type fakeAddressCache struct {
	store map[string]domain.AddressRecord
}

func newFakeAddressCache() *fakeAddressCache {
	return &fakeAddressCache{store: map[string]domain.AddressRecord{}}
}

func (f *fakeAddressCache) GetMany(_ context.Context, keys []string) (map[string]domain.AddressRecord, error) {
	out := map[string]domain.AddressRecord{}
	for _, k := range keys {
		if rec, ok := f.store[k]; ok {
			out[k] = rec
		}
	}
	return out, nil
}

func (f *fakeAddressCache) UpsertMany(_ context.Context, records []domain.AddressRecord) error {
	for _, r := range records {
		f.store[r.NormalizedKey] = r
	}
	return nil
}

type fakeGeocoder struct {
	fail map[string]bool
}

func (f *fakeGeocoder) Geocode(_ context.Context, query string) (ports.GeocodeResult, error) {
	if f.fail[query] {
		return ports.GeocodeResult{}, errors.New("provider unavailable")
	}
	return ports.GeocodeResult{Latitude: 32.7767, Longitude: -96.7970, Confidence: 0.85, Provider: "fake"}, nil
}

func TestResolveFetchesMissesAndWritesThrough(t *testing.T) {
	cache := newFakeAddressCache()
	provider := &fakeGeocoder{}
	dest := Destination{NormalizedKey: "dallas,tx", Query: "Dallas, TX"}
	diag := &domain.Diagnostics{}

	out, err := Resolve(t.Context(), []Destination{dest}, cache, provider, 4, diag)

	require.NoError(t, err)
	require.Contains(t, out, dest.NormalizedKey)
	assert.True(t, out[dest.NormalizedKey].Resolved())
	assert.Contains(t, cache.store, dest.NormalizedKey)
	assert.Empty(t, diag.GeocodeFailures)
}

func TestResolveUsesCacheHitWithoutCallingProvider(t *testing.T) {
	cache := newFakeAddressCache()
	lat, lng := 1.0, 2.0
	cache.store["dallas,tx"] = domain.AddressRecord{NormalizedKey: "dallas,tx", Latitude: &lat, Longitude: &lng}
	provider := &fakeGeocoder{fail: map[string]bool{"Dallas, TX": true}}
	dest := Destination{NormalizedKey: "dallas,tx", Query: "Dallas, TX"}
	diag := &domain.Diagnostics{}

	out, err := Resolve(t.Context(), []Destination{dest}, cache, provider, 4, diag)

	require.NoError(t, err)
	assert.Equal(t, 1.0, *out["dallas,tx"].Latitude)
	assert.Empty(t, diag.GeocodeFailures)
}

func TestResolveRecordsPerAddressFailureWithoutAbortingOthers(t *testing.T) {
	cache := newFakeAddressCache()
	provider := &fakeGeocoder{fail: map[string]bool{"Bad, TX": true}}
	dests := []Destination{
		{NormalizedKey: "bad,tx", Query: "Bad, TX"},
		{NormalizedKey: "good,tx", Query: "Good, TX"},
	}
	diag := &domain.Diagnostics{}

	out, err := Resolve(t.Context(), dests, cache, provider, 4, diag)

	require.NoError(t, err)
	assert.NotContains(t, out, "bad,tx")
	assert.Contains(t, out, "good,tx")
	assert.Equal(t, []string{"bad,tx"}, diag.GeocodeFailures)
}

func TestResolveWithNilProviderMarksEveryMissAsFailed(t *testing.T) {
	cache := newFakeAddressCache()
	dest := Destination{NormalizedKey: "dallas,tx", Query: "Dallas, TX"}
	diag := &domain.Diagnostics{}

	out, err := Resolve(t.Context(), []Destination{dest}, cache, nil, 4, diag)

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []string{"dallas,tx"}, diag.GeocodeFailures)
}

func TestResolveWithNilCacheStillResolvesViaProvider(t *testing.T) {
	provider := &fakeGeocoder{}
	dest := Destination{NormalizedKey: "dallas,tx", Query: "Dallas, TX"}
	diag := &domain.Diagnostics{}

	out, err := Resolve(t.Context(), []Destination{dest}, nil, provider, 4, diag)

	require.NoError(t, err)
	assert.Contains(t, out, dest.NormalizedKey)
	assert.True(t, diag.CacheUnavailableOnce)
}
