package strategy

// The inventory and arbitrage policies are plain ordered tables evaluated
// by a single lookup, keeping policy data out of control flow.

// SkewBand maps a position bracket to a signed price adjustment in cents.
// Bands are ordered by descending Min; the first band with position >= Min
// wins, the zero-value fallback applies below the last band.
type SkewBand struct {
	Min    int64 `yaml:"min"`
	Adjust int64 `yaml:"adjust"`
}

// SkewTable is an ordered list of bands plus a fallback adjustment.
type SkewTable struct {
	Bands    []SkewBand `yaml:"bands"`
	Fallback int64      `yaml:"fallback"`
}

// Lookup returns the adjustment for position.
func (t SkewTable) Lookup(position int64) int64 {
	for _, b := range t.Bands {
		if position >= b.Min {
			return b.Adjust
		}
	}
	return t.Fallback
}

// SizeBand maps a position bracket to resting sizes per side.
type SizeBand struct {
	Min  int64 `yaml:"min"`
	Buy  int64 `yaml:"buy"`
	Sell int64 `yaml:"sell"`
}

// SizeTable is an ordered list of size bands plus a fallback pair.
type SizeTable struct {
	Bands        []SizeBand `yaml:"bands"`
	FallbackBuy  int64      `yaml:"fallbackBuy"`
	FallbackSell int64      `yaml:"fallbackSell"`
}

// Lookup returns the buy and sell resting sizes for position.
func (t SizeTable) Lookup(position int64) (buy, sell int64) {
	for _, b := range t.Bands {
		if position >= b.Min {
			return b.Buy, b.Sell
		}
	}
	return t.FallbackBuy, t.FallbackSell
}

// Tier maps a minimum cross-instrument edge to an aggressive order size.
type Tier struct {
	MinEdge int64 `yaml:"minEdge"`
	Size    int64 `yaml:"size"`
}

// TierTable is ordered by descending MinEdge; Lookup returns 0 when the
// edge reaches no tier.
type TierTable []Tier

func (t TierTable) Lookup(edge int64) int64 {
	for _, tier := range t {
		if edge >= tier.MinEdge {
			return tier.Size
		}
	}
	return 0
}

// DefaultSkewTable is the live price-adjustment ladder.
func DefaultSkewTable() SkewTable {
	return SkewTable{
		Bands: []SkewBand{
			{Min: 81, Adjust: -200},
			{Min: 50, Adjust: -100},
			{Min: -49, Adjust: 0},
			{Min: -80, Adjust: 100},
		},
		Fallback: 200,
	}
}

// DefaultSizeTable is the live resting-size ladder.
func DefaultSizeTable() SizeTable {
	return SizeTable{
		Bands: []SizeBand{
			{Min: 90, Buy: 0, Sell: 50},
			{Min: 80, Buy: 5, Sell: 45},
			{Min: 40, Buy: 15, Sell: 35},
			{Min: -39, Buy: 20, Sell: 20},
			{Min: -79, Buy: 35, Sell: 15},
			{Min: -89, Buy: 45, Sell: 5},
		},
		FallbackBuy:  50,
		FallbackSell: 0,
	}
}

// DefaultTiers is the edge ladder for aggressive crossing orders.
func DefaultTiers() TierTable {
	return TierTable{
		{MinEdge: 300, Size: 30},
		{MinEdge: 200, Size: 20},
		{MinEdge: 100, Size: 10},
	}
}
