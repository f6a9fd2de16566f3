package strategy

import (
	"ready-trade-go/market"
	"ready-trade-go/order"
)

// ArbConfig controls the crossing trigger.
type ArbConfig struct {
	Enabled bool
	Cap     int64 // aggressive-only position cap, inside the main limit
	Tiers   TierTable
}

// Signal is a candidate immediate-or-cancel order. Size is already capped
// by the tier and by both touch volumes; the engine further caps it by
// position headroom and the one-per-side slot.
type Signal struct {
	Side  order.Side
	Price int64
	Size  int64
	Edge  int64
}

// Arbitrage compares the tracked touch against the hedge touch and emits
// crossing candidates when the dislocation reaches a tier.
type Arbitrage struct {
	cfg ArbConfig
}

func NewArbitrage(cfg ArbConfig) *Arbitrage {
	return &Arbitrage{cfg: cfg}
}

// Reconfigure replaces the tier policy. Only call between engine callbacks.
func (a *Arbitrage) Reconfigure(cfg ArbConfig) {
	a.cfg = cfg
}

// Enabled reports whether crossing trades are switched on.
func (a *Arbitrage) Enabled() bool {
	return a.cfg.Enabled
}

// Cap returns the aggressive-only position cap.
func (a *Arbitrage) Cap() int64 {
	return a.cfg.Cap
}

// Signals evaluates both directions against the latest snapshots.
func (a *Arbitrage) Signals(tracked, hedge market.Depth) []Signal {
	if !a.cfg.Enabled {
		return nil
	}
	var out []Signal

	// Buy tracked against the hedge bid.
	trackedAsk, trackedAskVol := tracked.BestAsk()
	hedgeBid, hedgeBidVol := hedge.BestBid()
	if trackedAsk != 0 && hedgeBid != 0 {
		edge := hedgeBid - trackedAsk
		if size := minVol(a.cfg.Tiers.Lookup(edge), trackedAskVol, hedgeBidVol); size > 0 {
			out = append(out, Signal{Side: order.Buy, Price: trackedAsk, Size: size, Edge: edge})
		}
	}

	// Sell tracked against the hedge ask.
	trackedBid, trackedBidVol := tracked.BestBid()
	hedgeAsk, hedgeAskVol := hedge.BestAsk()
	if trackedBid != 0 && hedgeAsk != 0 {
		edge := trackedBid - hedgeAsk
		if size := minVol(a.cfg.Tiers.Lookup(edge), trackedBidVol, hedgeAskVol); size > 0 {
			out = append(out, Signal{Side: order.Sell, Price: trackedBid, Size: size, Edge: edge})
		}
	}
	return out
}

func minVol(vs ...int64) int64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
