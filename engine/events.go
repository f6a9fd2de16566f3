package engine

import (
	"ready-trade-go/market"
	"ready-trade-go/order"
	"ready-trade-go/strategy"
)

// Venue is the outbound order gateway. Every call is fire-and-forget: the
// engine does not wait for acknowledgments, which arrive later as events.
type Venue interface {
	InsertOrder(id int64, side order.Side, price, volume int64, tif order.TimeInForce) error
	CancelOrder(id int64) error
	InsertHedgeOrder(id int64, side order.Side, price, volume int64) error
}

// Event is one inbound venue callback. All events are funneled through a
// single channel so the engine applies them one at a time.
type Event interface {
	isEvent()
}

// BookUpdate carries a fresh five-level snapshot for one instrument.
type BookUpdate struct {
	Instrument market.Instrument
	Depth      market.Depth
}

// TradeTicks reports trading activity on an instrument. Informational.
type TradeTicks struct {
	Instrument market.Instrument
	Depth      market.Depth
}

// OrderFilled reports an incremental fill on a tracked-instrument order.
// Price may be better than the order's limit price.
type OrderFilled struct {
	OrderID int64
	Price   int64
	Volume  int64
}

// HedgeFilled reports a fill on a hedge order.
type HedgeFilled struct {
	OrderID int64
	Price   int64
	Volume  int64
}

// OrderStatus reports the current fill state of an order. RemainingVolume
// of zero means the order is terminal (filled out or canceled).
type OrderStatus struct {
	OrderID         int64
	FilledVolume    int64
	RemainingVolume int64
	Fees            int64
}

// VenueError reports an exchange error. OrderID 0 means the error is not
// specific to any order.
type VenueError struct {
	OrderID int64
	Message string
}

// Reconfigure swaps the quoting and crossing policy. Delivered through the
// event channel so the swap never interleaves with a callback.
type Reconfigure struct {
	Pricer strategy.PricerConfig
	Arb    strategy.ArbConfig
}

func (BookUpdate) isEvent()  {}
func (TradeTicks) isEvent()  {}
func (OrderFilled) isEvent() {}
func (HedgeFilled) isEvent() {}
func (OrderStatus) isEvent() {}
func (VenueError) isEvent()  {}
func (Reconfigure) isEvent() {}
