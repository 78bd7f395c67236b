package geocode

import (
	"context"
	"sync"

	"loadplanner/internal/domain"
	"loadplanner/internal/obs"
	"loadplanner/internal/ports"
)

// Destination is one unique normalized address awaiting resolution.
type Destination struct {
	NormalizedKey string
	Query         string
	Parts         Parts
}

// DefaultWorkerCount is the bounded worker-pool width spec §4.7/§5
// defaults to.
const DefaultWorkerCount = 10

// Resolve implements the two-tier lookup protocol: one batch cache
// query, then a bounded-concurrency fan-out to the provider for misses,
// with write-through (spec §4.7 steps 1-4). A provider failure for one
// address is recorded in diag and the address is excluded from the
// result — it never fails the whole request (spec §7 GeocodeFailed).
func Resolve(
	ctx context.Context,
	destinations []Destination,
	cache ports.AddressCache,
	provider ports.GeocodingProvider,
	workerCount int,
	diag *domain.Diagnostics,
) (map[string]domain.AddressRecord, error) {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}

	unique := make(map[string]Destination, len(destinations))
	keys := make([]string, 0, len(destinations))
	for _, d := range destinations {
		if _, ok := unique[d.NormalizedKey]; ok {
			continue
		}
		unique[d.NormalizedKey] = d
		keys = append(keys, d.NormalizedKey)
	}

	hits := map[string]domain.AddressRecord{}
	if cache == nil {
		diag.CacheUnavailableOnce = true
	} else if h, err := cache.GetMany(ctx, keys); err != nil {
		diag.CacheUnavailableOnce = true
	} else {
		hits = h
	}

	var misses []Destination
	for _, k := range keys {
		if _, ok := hits[k]; !ok {
			misses = append(misses, unique[k])
		}
	}

	if len(keys) > 0 {
		obs.GeocodeCacheHitRatio.Set(float64(len(hits)) / float64(len(keys)))
	}

	resolved := make(map[string]domain.AddressRecord, len(keys))
	for k, v := range hits {
		resolved[k] = v
	}

	if len(misses) > 0 && provider == nil {
		for _, d := range misses {
			diag.AddGeocodeFailure(d.NormalizedKey)
		}
		misses = nil
	}

	if len(misses) > 0 {
		fresh := fetchMany(ctx, misses, provider, workerCount, diag)
		for k, v := range fresh {
			resolved[k] = v
		}
		if len(fresh) > 0 && cache != nil {
			records := make([]domain.AddressRecord, 0, len(fresh))
			for _, v := range fresh {
				records = append(records, v)
			}
			if err := cache.UpsertMany(ctx, records); err != nil {
				diag.CacheUnavailableOnce = true
			}
		}
	}

	return resolved, nil
}

type geocodeOutcome struct {
	key    string
	record domain.AddressRecord
	err    error
}

// fetchMany dispatches one provider call per miss through a bounded
// worker pool (default width 10), ported from
// erenceh-delivery-route-api/internal/adapters/distance/ors_geocode.go's
// semaphore-bounded fan-out/fan-in, generalized so a single address
// failure only marks that address failed instead of cancelling the rest.
func fetchMany(ctx context.Context, misses []Destination, provider ports.GeocodingProvider, workerCount int, diag *domain.Diagnostics) map[string]domain.AddressRecord {
	sem := make(chan struct{}, workerCount)
	resultsCh := make(chan geocodeOutcome, len(misses))
	var wg sync.WaitGroup

	for _, d := range misses {
		wg.Add(1)
		go func(dest Destination) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			res, err := provider.Geocode(ctx, dest.Query)
			if err != nil {
				resultsCh <- geocodeOutcome{key: dest.NormalizedKey, err: err}
				return
			}

			lat, lng := res.Latitude, res.Longitude
			resultsCh <- geocodeOutcome{
				key: dest.NormalizedKey,
				record: domain.AddressRecord{
					NormalizedKey: dest.NormalizedKey,
					Street:        dest.Parts.Street,
					City:          dest.Parts.City,
					State:         dest.Parts.State,
					Zip:           dest.Parts.Zip,
					Country:       dest.Parts.Country,
					Latitude:      &lat,
					Longitude:     &lng,
					Confidence:    &res.Confidence,
					Provider:      res.Provider,
				},
			}
		}(d)
	}

	wg.Wait()
	close(resultsCh)

	out := make(map[string]domain.AddressRecord, len(misses))
	for res := range resultsCh {
		if res.err != nil {
			diag.AddGeocodeFailure(res.key)
			continue
		}
		out[res.key] = res.record
	}
	return out
}
