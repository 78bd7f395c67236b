package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 52000.0, cfg.Weight.TexasMax)
	assert.Equal(t, 47000.0, cfg.Weight.TexasMin)
	assert.Equal(t, 0.98, cfg.Routing.SoftFullRatio)
	assert.Equal(t, 100, cfg.Routing.RemainderSafetyBound)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PLANNER_SERVER_PORT", "9090")
	t.Setenv("PLANNER_DATABASE_DRIVER", "postgres")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestWeightConfigToDomainRoundTrips(t *testing.T) {
	w := WeightConfig{TexasMax: 1, TexasMin: 2, OtherMax: 3, OtherMin: 4}
	d := w.ToDomain()

	assert.Equal(t, 1.0, d.TexasMax)
	assert.Equal(t, 2.0, d.TexasMin)
	assert.Equal(t, 3.0, d.OtherMax)
	assert.Equal(t, 4.0, d.OtherMin)
}
