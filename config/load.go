package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ready-trade-go/infrastructure/logger"
	"ready-trade-go/strategy"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env         string         `yaml:"env"`
	Venue       VenueConfig    `yaml:"venue"`
	Strategy    StrategyConfig `yaml:"strategy"`
	Logger      logger.Config  `yaml:"logger"`
	MetricsAddr string         `yaml:"metricsAddr"`
}

// VenueConfig is the exchange session boundary.
type VenueConfig struct {
	URL    string `yaml:"url"`
	Team   string `yaml:"team"`
	Secret string `yaml:"secret"`
}

// StrategyConfig carries the full quoting and crossing policy.
type StrategyConfig struct {
	LotSize       int64              `yaml:"lotSize"`
	PositionLimit int64              `yaml:"positionLimit"`
	TickSize      int64              `yaml:"tickSize"`
	HalfSpread    int64              `yaml:"halfSpread"`
	SpreadFloor   int64              `yaml:"spreadFloor"`
	Sizing        strategy.Mode      `yaml:"sizing"`    // banded | continuous
	PriceSkew     strategy.Mode      `yaml:"priceSkew"` // banded | continuous
	SkewTable     strategy.SkewTable `yaml:"skewTable"`
	SizeTable     strategy.SizeTable `yaml:"sizeTable"`
	Arbitrage     ArbitrageConfig    `yaml:"arbitrage"`
}

// ArbitrageConfig controls the crossing trigger.
type ArbitrageConfig struct {
	Enabled bool               `yaml:"enabled"`
	Cap     int64              `yaml:"cap"`
	Tiers   strategy.TierTable `yaml:"tiers"`
}

// Default returns a complete config with the live policy constants.
func Default() AppConfig {
	return AppConfig{
		Env:         "dev",
		MetricsAddr: ":9100",
		Logger:      logger.DefaultConfig(),
		Strategy: StrategyConfig{
			LotSize:       20,
			PositionLimit: 100,
			TickSize:      100,
			HalfSpread:    200,
			SpreadFloor:   200,
			Sizing:        strategy.ModeBanded,
			PriceSkew:     strategy.ModeBanded,
			SkewTable:     strategy.DefaultSkewTable(),
			SizeTable:     strategy.DefaultSizeTable(),
			Arbitrage: ArbitrageConfig{
				Enabled: true,
				Cap:     50,
				Tiers:   strategy.DefaultTiers(),
			},
		},
	}
}

// Load reads YAML config from path on top of defaults and validates it.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides sensitive fields from
// env vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("RTG_VENUE_TEAM"); v != "" {
		cfg.Venue.Team = v
	}
	if v := os.Getenv("RTG_VENUE_SECRET"); v != "" {
		cfg.Venue.Secret = v
	}
	return cfg, Validate(cfg)
}

// PricerConfig converts the strategy section for strategy.NewPricer.
func (c StrategyConfig) PricerConfig() strategy.PricerConfig {
	return strategy.PricerConfig{
		LotSize:       c.LotSize,
		PositionLimit: c.PositionLimit,
		TickSize:      c.TickSize,
		HalfSpread:    c.HalfSpread,
		SpreadFloor:   c.SpreadFloor,
		Sizing:        c.Sizing,
		PriceSkew:     c.PriceSkew,
		SkewTable:     c.SkewTable,
		SizeTable:     c.SizeTable,
	}
}

// ArbConfig converts the arbitrage section for strategy.NewArbitrage.
func (c StrategyConfig) ArbConfig() strategy.ArbConfig {
	return strategy.ArbConfig{
		Enabled: c.Arbitrage.Enabled,
		Cap:     c.Arbitrage.Cap,
		Tiers:   c.Arbitrage.Tiers,
	}
}
