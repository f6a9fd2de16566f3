package market

import "sync"

// DepthLevels is the number of price levels carried per book side.
const DepthLevels = 5

// Instrument identifies which book a message concerns.
type Instrument int

const (
	// Tracked is the quoted instrument (ETF).
	Tracked Instrument = iota
	// Hedge is the correlated instrument used to flatten exposure (future).
	Hedge
)

// String returns the instrument name.
func (i Instrument) String() string {
	switch i {
	case Tracked:
		return "TRACKED"
	case Hedge:
		return "HEDGE"
	default:
		return "UNKNOWN"
	}
}

// Depth is a five-level book snapshot, best to worst. A price of 0 means
// the level is absent. Prices are in cents, volumes in lots.
type Depth struct {
	Sequence   uint64
	AskPrices  [DepthLevels]int64
	AskVolumes [DepthLevels]int64
	BidPrices  [DepthLevels]int64
	BidVolumes [DepthLevels]int64
}

// BestBid returns the top-of-book bid price and volume; 0,0 if absent.
func (d Depth) BestBid() (price, volume int64) {
	return d.BidPrices[0], d.BidVolumes[0]
}

// BestAsk returns the top-of-book ask price and volume; 0,0 if absent.
func (d Depth) BestAsk() (price, volume int64) {
	return d.AskPrices[0], d.AskVolumes[0]
}

// Spread returns bestAsk-bestBid. Only meaningful when both sides quote.
func (d Depth) Spread() int64 {
	return d.AskPrices[0] - d.BidPrices[0]
}

// WeightedMid returns the volume-weighted mid price. When only one side
// quotes it falls back to that side; ok is false when both sides are empty.
func (d Depth) WeightedMid() (mid float64, ok bool) {
	bid, bidVol := d.BestBid()
	ask, askVol := d.BestAsk()
	switch {
	case bid != 0 && ask != 0 && bidVol+askVol != 0:
		return float64(bid*askVol+ask*bidVol) / float64(askVol+bidVol), true
	case bid != 0:
		return float64(bid), true
	case ask != 0:
		return float64(ask), true
	default:
		return 0, false
	}
}

// Store keeps the most recent snapshot per instrument. Each update replaces
// the previous one wholesale.
type Store struct {
	mu     sync.RWMutex
	depths [2]Depth
	seen   [2]bool
}

func NewStore() *Store {
	return &Store{}
}

// Apply replaces the snapshot for inst. Snapshots with a sequence number at
// or below the stored one are stale and dropped; Apply reports acceptance.
func (s *Store) Apply(inst Instrument, d Depth) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[inst] && d.Sequence <= s.depths[inst].Sequence {
		return false
	}
	s.depths[inst] = d
	s.seen[inst] = true
	return true
}

// Depth returns the latest snapshot for inst; ok is false before the first
// update arrives.
func (s *Store) Depth(inst Instrument) (Depth, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.depths[inst], s.seen[inst]
}
