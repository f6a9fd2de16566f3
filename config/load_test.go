package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ready-trade-go/strategy"
)

const sampleYAML = `
env: test
venue:
  url: ws://localhost:9000/exec
  team: team-a
strategy:
  lotSize: 20
  positionLimit: 100
  halfSpread: 250
  sizing: continuous
  arbitrage:
    enabled: true
    cap: 40
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOverDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, int64(250), cfg.Strategy.HalfSpread)
	assert.Equal(t, strategy.ModeContinuous, cfg.Strategy.Sizing)
	// untouched fields keep defaults
	assert.Equal(t, strategy.ModeBanded, cfg.Strategy.PriceSkew)
	assert.Equal(t, int64(100), cfg.Strategy.TickSize)
	assert.Equal(t, int64(40), cfg.Strategy.Arbitrage.Cap)
	assert.Len(t, cfg.Strategy.Arbitrage.Tiers, 3)
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	bad := sampleYAML + `
  skewTable:
    bands:
      - {min: 10, adjust: -100}
      - {min: 50, adjust: -200}
`
	_, err := Load(writeTemp(t, bad))
	assert.Error(t, err)
}

func TestLoadRejectsCapOutsideLimit(t *testing.T) {
	bad := `
env: test
strategy:
  arbitrage:
    enabled: true
    cap: 500
`
	_, err := Load(writeTemp(t, bad))
	assert.ErrorContains(t, err, "arbitrage.cap")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RTG_VENUE_SECRET", "sekrit")
	t.Setenv("RTG_VENUE_TEAM", "team-b")
	cfg, err := LoadWithEnvOverrides(writeTemp(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "sekrit", cfg.Venue.Secret)
	assert.Equal(t, "team-b", cfg.Venue.Team)
}

func TestValidateDefault(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestValidateModes(t *testing.T) {
	cfg := Default()
	cfg.Strategy.Sizing = "stepwise"
	assert.Error(t, Validate(cfg))
}

func TestPricerConfigConversion(t *testing.T) {
	cfg := Default()
	pc := cfg.Strategy.PricerConfig()
	assert.Equal(t, cfg.Strategy.HalfSpread, pc.HalfSpread)
	assert.Equal(t, cfg.Strategy.SkewTable, pc.SkewTable)
	ac := cfg.Strategy.ArbConfig()
	assert.True(t, ac.Enabled)
	assert.Equal(t, int64(50), ac.Cap)
}
