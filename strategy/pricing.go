// Package strategy derives target quotes and crossing signals from book
// snapshots and the current position.
package strategy

import (
	"errors"

	"ready-trade-go/market"
)

// Mode selects between the discrete-banded and continuous policy variants.
type Mode string

const (
	ModeBanded     Mode = "banded"
	ModeContinuous Mode = "continuous"
)

// ErrCrossedQuote marks a computed ask at or below the computed bid. The
// caller must skip the update and leave resting orders unchanged.
var ErrCrossedQuote = errors.New("computed quote is crossed")

// PricerConfig holds the quoting policy.
type PricerConfig struct {
	LotSize       int64
	PositionLimit int64
	TickSize      int64
	HalfSpread    int64 // base distance from the hedge touch, in cents
	SpreadFloor   int64 // tracked spread above which quotes tighten inside it
	Sizing        Mode
	PriceSkew     Mode
	SkewTable     SkewTable
	SizeTable     SizeTable
}

// Quote is the target state for both passive slots. A zero price means no
// quote on that side.
type Quote struct {
	BidPrice int64
	AskPrice int64
	BuySize  int64
	SellSize int64
}

// Pricer computes target quotes. It is stateless; config may be swapped
// between callbacks via Reconfigure.
type Pricer struct {
	cfg PricerConfig
}

func NewPricer(cfg PricerConfig) *Pricer {
	return &Pricer{cfg: cfg}
}

// Reconfigure replaces the policy. Only call between engine callbacks.
func (p *Pricer) Reconfigure(cfg PricerConfig) {
	p.cfg = cfg
}

// Quotes derives the target bid/ask prices and sizes from the latest
// snapshots and the signed position.
func (p *Pricer) Quotes(tracked, hedge market.Depth, position int64) (Quote, error) {
	hedgeBid, _ := hedge.BestBid()
	hedgeAsk, _ := hedge.BestAsk()
	trackedBid, _ := tracked.BestBid()
	trackedAsk, _ := tracked.BestAsk()

	bid := hedgeBid - p.cfg.HalfSpread
	ask := hedgeAsk + p.cfg.HalfSpread

	// When the tracked market itself is wide, sit just inside its touch
	// instead of giving up the whole base spread.
	trackedSpread := tracked.Spread()
	if trackedAsk != 0 && ask < trackedAsk-p.cfg.HalfSpread && trackedSpread > p.cfg.SpreadFloor {
		ask = trackedAsk - p.cfg.HalfSpread
	}
	if trackedBid != 0 && bid > trackedBid+p.cfg.HalfSpread && trackedSpread > p.cfg.SpreadFloor {
		bid = trackedBid + p.cfg.HalfSpread
	}

	adj := p.priceAdjustment(position)
	bid += adj
	ask += adj

	buySize, sellSize := p.sizes(position)

	// Never quote against an empty hedge side.
	if hedgeBid == 0 {
		bid = 0
		buySize = 0
	}
	if hedgeAsk == 0 {
		ask = 0
		sellSize = 0
	}

	if bid != 0 && ask != 0 && ask <= bid {
		return Quote{}, ErrCrossedQuote
	}
	return Quote{BidPrice: bid, AskPrice: ask, BuySize: buySize, SellSize: sellSize}, nil
}

func (p *Pricer) priceAdjustment(position int64) int64 {
	if p.cfg.PriceSkew == ModeContinuous {
		return -floorDiv(position, 50) * p.cfg.TickSize
	}
	return p.cfg.SkewTable.Lookup(position)
}

func (p *Pricer) sizes(position int64) (buy, sell int64) {
	if p.cfg.Sizing == ModeContinuous {
		max := 2*p.cfg.LotSize + 10
		buy = clamp(p.cfg.LotSize-position/2, 0, max)
		sell = clamp(p.cfg.LotSize+position/2, 0, max)
	} else {
		buy, sell = p.cfg.SizeTable.Lookup(position)
	}
	// An order alone must never be able to breach the limit.
	if room := p.cfg.PositionLimit - position; buy > room {
		buy = clamp(room, 0, buy)
	}
	if room := p.cfg.PositionLimit + position; sell > room {
		sell = clamp(room, 0, sell)
	}
	return buy, sell
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// floorDiv divides rounding toward negative infinity, so negative
// positions step the same way positive ones do.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
