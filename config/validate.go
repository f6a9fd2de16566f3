package config

import (
	"errors"
	"fmt"

	"ready-trade-go/strategy"
)

// Validate ensures required fields are present and the policy is coherent.
func Validate(cfg AppConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	s := cfg.Strategy
	if s.LotSize <= 0 {
		return errors.New("strategy.lotSize must be > 0")
	}
	if s.PositionLimit <= 0 {
		return errors.New("strategy.positionLimit must be > 0")
	}
	if s.TickSize <= 0 {
		return errors.New("strategy.tickSize must be > 0")
	}
	if s.HalfSpread <= 0 {
		return errors.New("strategy.halfSpread must be > 0")
	}
	if s.SpreadFloor < 0 {
		return errors.New("strategy.spreadFloor must be >= 0")
	}
	if err := validateMode("strategy.sizing", s.Sizing); err != nil {
		return err
	}
	if err := validateMode("strategy.priceSkew", s.PriceSkew); err != nil {
		return err
	}
	if s.Sizing == strategy.ModeBanded {
		if err := validateDescending("strategy.sizeTable", sizeBounds(s.SizeTable)); err != nil {
			return err
		}
		for _, b := range s.SizeTable.Bands {
			if b.Buy < 0 || b.Sell < 0 {
				return fmt.Errorf("strategy.sizeTable band at %d has negative size", b.Min)
			}
		}
	}
	if s.PriceSkew == strategy.ModeBanded {
		if err := validateDescending("strategy.skewTable", skewBounds(s.SkewTable)); err != nil {
			return err
		}
	}
	if s.Arbitrage.Enabled {
		if s.Arbitrage.Cap <= 0 || s.Arbitrage.Cap > s.PositionLimit {
			return errors.New("strategy.arbitrage.cap must be in (0, positionLimit]")
		}
		if len(s.Arbitrage.Tiers) == 0 {
			return errors.New("strategy.arbitrage.tiers is required when enabled")
		}
		if err := validateDescending("strategy.arbitrage.tiers", tierBounds(s.Arbitrage.Tiers)); err != nil {
			return err
		}
		for _, tier := range s.Arbitrage.Tiers {
			if tier.Size <= 0 {
				return fmt.Errorf("strategy.arbitrage tier at %d must have size > 0", tier.MinEdge)
			}
		}
	}
	return nil
}

func validateMode(field string, m strategy.Mode) error {
	if m != strategy.ModeBanded && m != strategy.ModeContinuous {
		return fmt.Errorf("%s must be banded or continuous, got %q", field, m)
	}
	return nil
}

// Band tables are evaluated first-match, so boundaries must strictly
// decrease or later bands are unreachable.
func validateDescending(field string, bounds []int64) error {
	for i := 1; i < len(bounds); i++ {
		if bounds[i] >= bounds[i-1] {
			return fmt.Errorf("%s bands must be in strictly descending order", field)
		}
	}
	return nil
}

func skewBounds(t strategy.SkewTable) []int64 {
	out := make([]int64, len(t.Bands))
	for i, b := range t.Bands {
		out[i] = b.Min
	}
	return out
}

func sizeBounds(t strategy.SizeTable) []int64 {
	out := make([]int64, len(t.Bands))
	for i, b := range t.Bands {
		out[i] = b.Min
	}
	return out
}

func tierBounds(t strategy.TierTable) []int64 {
	out := make([]int64, len(t))
	for i, tier := range t {
		out[i] = tier.MinEdge
	}
	return out
}
