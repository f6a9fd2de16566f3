// Package sim provides an in-memory exchange for offline runs and
// integration tests. It implements the engine's venue interface and
// answers with the same event types the live gateway produces.
package sim

import (
	"fmt"

	"go.uber.org/zap"

	"ready-trade-go/engine"
	"ready-trade-go/infrastructure/logger"
	"ready-trade-go/market"
	"ready-trade-go/order"
)

type restingOrder struct {
	id        int64
	side      order.Side
	price     int64
	remaining int64
	filled    int64
}

// Exchange is a single-threaded matching venue. Outbound calls append
// response events to an internal queue; the caller drains the queue and
// feeds it back to the engine, which keeps event order deterministic.
type Exchange struct {
	log *logger.Logger

	books   map[market.Instrument]market.Depth
	resting map[int64]*restingOrder
	queue   []engine.Event

	sequence uint64
}

// NewExchange builds an empty exchange. log may be nil.
func NewExchange(log *logger.Logger) *Exchange {
	if log == nil {
		log = logger.NewNop()
	}
	return &Exchange{
		log:     log,
		books:   make(map[market.Instrument]market.Depth),
		resting: make(map[int64]*restingOrder),
	}
}

// Feed installs a new snapshot for one instrument and queues the book
// update event. Resting orders that the new book crosses are filled.
func (x *Exchange) Feed(inst market.Instrument, d market.Depth) {
	if d.Sequence == 0 {
		x.sequence++
		d.Sequence = x.sequence
	} else if d.Sequence > x.sequence {
		x.sequence = d.Sequence
	}
	x.books[inst] = d
	x.queue = append(x.queue, engine.BookUpdate{Instrument: inst, Depth: d})
	if inst == market.Tracked {
		x.matchResting(d)
	}
}

// Drain returns the queued events and empties the queue.
func (x *Exchange) Drain() []engine.Event {
	q := x.queue
	x.queue = nil
	return q
}

// OpenOrder describes one order currently resting in the book.
type OpenOrder struct {
	Side      order.Side
	Price     int64
	Remaining int64
}

// OpenOrders returns a snapshot of the resting orders keyed by id.
func (x *Exchange) OpenOrders() map[int64]OpenOrder {
	out := make(map[int64]OpenOrder, len(x.resting))
	for id, ro := range x.resting {
		out[id] = OpenOrder{Side: ro.side, Price: ro.price, Remaining: ro.remaining}
	}
	return out
}

// InsertOrder matches the order against the current tracked book, rests
// any remainder for RESTING orders and cancels it for IOC orders.
func (x *Exchange) InsertOrder(id int64, side order.Side, price, volume int64, tif order.TimeInForce) error {
	if err := x.validate(id, price, volume); err != nil {
		return nil // surfaced as an event, like the live venue
	}
	ro := &restingOrder{id: id, side: side, price: price, remaining: volume}
	x.fill(ro, x.books[market.Tracked])
	switch {
	case ro.remaining == 0:
		x.status(ro)
	case tif == order.ImmediateOrCancel:
		ro.remaining = 0
		x.status(ro)
	default:
		x.resting[id] = ro
		x.status(ro)
	}
	return nil
}

// CancelOrder removes a resting order and reports it terminal. Unknown
// ids get an error event, matching live venue behavior.
func (x *Exchange) CancelOrder(id int64) error {
	ro, ok := x.resting[id]
	if !ok {
		x.queue = append(x.queue, engine.VenueError{OrderID: id, Message: "order not found"})
		return nil
	}
	delete(x.resting, id)
	ro.remaining = 0
	x.status(ro)
	return nil
}

// InsertHedgeOrder fills immediately at the hedge touch. The hedge book
// is assumed deep enough for the full volume.
func (x *Exchange) InsertHedgeOrder(id int64, side order.Side, price, volume int64) error {
	if err := x.validate(id, price, volume); err != nil {
		return nil
	}
	d := x.books[market.Hedge]
	execPrice := price
	if side == order.Buy {
		if ask, _ := d.BestAsk(); ask != 0 && ask <= price {
			execPrice = ask
		}
	} else {
		if bid, _ := d.BestBid(); bid != 0 && bid >= price {
			execPrice = bid
		}
	}
	x.queue = append(x.queue, engine.HedgeFilled{OrderID: id, Price: execPrice, Volume: volume})
	return nil
}

// validate queues an error event for malformed orders and duplicate ids.
func (x *Exchange) validate(id, price, volume int64) error {
	var reason string
	switch {
	case id <= 0:
		reason = "invalid order id"
	case price <= 0:
		reason = "invalid price"
	case volume <= 0:
		reason = "invalid volume"
	default:
		if _, dup := x.resting[id]; dup {
			reason = "duplicate order id"
		}
	}
	if reason == "" {
		return nil
	}
	x.log.Warn("order rejected",
		zap.Int64("order_id", id),
		zap.String("reason", reason))
	x.queue = append(x.queue, engine.VenueError{OrderID: id, Message: reason})
	return fmt.Errorf("sim: %s", reason)
}

// matchResting fills resting orders the fresh snapshot crosses.
func (x *Exchange) matchResting(d market.Depth) {
	for id, ro := range x.resting {
		x.fill(ro, d)
		if ro.remaining == 0 {
			delete(x.resting, id)
			x.status(ro)
		}
	}
}

// fill executes the marketable portion of an order against the book's
// touch level. Executions happen at the order's limit price.
func (x *Exchange) fill(ro *restingOrder, d market.Depth) {
	var avail int64
	if ro.side == order.Buy {
		ask, vol := d.BestAsk()
		if ask == 0 || ask > ro.price {
			return
		}
		avail = vol
	} else {
		bid, vol := d.BestBid()
		if bid == 0 || bid < ro.price {
			return
		}
		avail = vol
	}
	vol := ro.remaining
	if vol > avail {
		vol = avail
	}
	if vol <= 0 {
		return
	}
	ro.remaining -= vol
	ro.filled += vol
	x.queue = append(x.queue, engine.OrderFilled{OrderID: ro.id, Price: ro.price, Volume: vol})
}

func (x *Exchange) status(ro *restingOrder) {
	x.queue = append(x.queue, engine.OrderStatus{
		OrderID:         ro.id,
		FilledVolume:    ro.filled,
		RemainingVolume: ro.remaining,
	})
}
