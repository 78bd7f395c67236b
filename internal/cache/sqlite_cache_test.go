package cache

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"loadplanner/internal/domain"
	"loadplanner/internal/ports"
)

func ptr(f float64) *float64 { return &f }

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSchema(db, SQLite))
	return db
}

func TestSqliteAddressCacheRoundTrip(t *testing.T) {
	db := openTestDB(t)
	c := NewSqliteAddressCache(db)
	ctx := t.Context()

	rec := domain.AddressRecord{
		NormalizedKey: "100 main st,dallas,tx,75201,usa",
		Street:        "100 Main St", City: "Dallas", State: "TX", Zip: "75201", Country: "USA",
		Latitude: ptr(32.7767), Longitude: ptr(-96.7970), Confidence: ptr(0.95), Provider: "google",
	}
	require.NoError(t, c.UpsertMany(ctx, []domain.AddressRecord{rec}))

	out, err := c.GetMany(ctx, []string{rec.NormalizedKey, "missing-key"})
	require.NoError(t, err)
	require.Contains(t, out, rec.NormalizedKey)
	assert.Equal(t, rec.Provider, out[rec.NormalizedKey].Provider)
	assert.NotContains(t, out, "missing-key")
}

func TestSqliteAddressCacheUpsertReplaces(t *testing.T) {
	db := openTestDB(t)
	c := NewSqliteAddressCache(db)
	ctx := t.Context()

	key := "100 main st,dallas,tx,75201,usa"
	first := domain.AddressRecord{NormalizedKey: key, Street: "100 Main St", City: "Dallas", State: "TX", Zip: "75201", Country: "USA", Confidence: ptr(0.6), Provider: "google"}
	second := first
	second.Confidence = ptr(0.95)

	require.NoError(t, c.UpsertMany(ctx, []domain.AddressRecord{first}))
	require.NoError(t, c.UpsertMany(ctx, []domain.AddressRecord{second}))

	out, err := c.GetMany(ctx, []string{key})
	require.NoError(t, err)
	require.NotNil(t, out[key].Confidence)
	assert.Equal(t, 0.95, *out[key].Confidence)
}

func TestSqliteDistanceCacheRoundTrip(t *testing.T) {
	db := openTestDB(t)
	c := NewSqliteDistanceCache(db)
	ctx := t.Context()

	rec := domain.DistanceRecord{OriginKey: "a", DestKey: "b", Provider: "ors", Miles: 224.5, Minutes: 210}
	require.NoError(t, c.UpsertMany(ctx, []domain.DistanceRecord{rec}))

	out, err := c.GetMany(ctx, []ports.DistancePairKey{
		{OriginKey: "a", DestKey: "b", Provider: "ors"},
		{OriginKey: "b", DestKey: "a", Provider: "ors"},
	})
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 224.5, out[ports.DistancePairKey{OriginKey: "a", DestKey: "b", Provider: "ors"}].Miles)
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, InitSchema(db, SQLite))
}
