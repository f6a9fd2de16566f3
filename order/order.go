package order

// Side of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Kind distinguishes how an order participates in the strategy.
type Kind int

const (
	// Passive orders rest in the book all day until filled or canceled.
	Passive Kind = iota
	// Aggressive orders cross the book with immediate-or-cancel semantics.
	Aggressive
	// HedgeKind marks offsetting orders on the hedge instrument.
	HedgeKind
)

func (k Kind) String() string {
	switch k {
	case Passive:
		return "PASSIVE"
	case Aggressive:
		return "AGGRESSIVE"
	case HedgeKind:
		return "HEDGE"
	default:
		return "UNKNOWN"
	}
}

// TimeInForce controls how long an order stays live at the venue.
type TimeInForce int

const (
	// Resting orders stay in the book for the trading day.
	Resting TimeInForce = iota
	// ImmediateOrCancel orders execute what they can and the venue cancels
	// the remainder.
	ImmediateOrCancel
)

// Working is a live order as tracked by the strategy. Outstanding shrinks
// on partial fills and the order dies when it reaches zero.
type Working struct {
	ID          int64
	Side        Side
	Kind        Kind
	Price       int64
	Volume      int64 // original volume at insert
	Outstanding int64 // unfilled remainder still counted against the limit

	// PendingCancel is set when a cancel request has gone out and the
	// order's working volume has already been released. Notifications
	// arriving after that must not move the counters again.
	PendingCancel bool
}
