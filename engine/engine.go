// Package engine is the strategy core: it owns all mutable strategy state
// and applies venue callbacks one at a time.
package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ready-trade-go/infrastructure/logger"
	"ready-trade-go/inventory"
	"ready-trade-go/market"
	"ready-trade-go/monitor"
	"ready-trade-go/order"
	"ready-trade-go/strategy"
)

// Config holds the engine's venue constants. Hedge orders are priced at
// the nearest tick inside the venue's valid price range so they always
// cross the hedge book.
type Config struct {
	MinimumBid int64
	MaximumAsk int64
	TickSize   int64
}

// DefaultConfig returns the venue constants.
func DefaultConfig() Config {
	return Config{
		MinimumBid: 1,
		MaximumAsk: 2147483647,
		TickSize:   100,
	}
}

// Components are the engine's collaborators. Venue, Inventory, Pricer and
// Arbitrage are required; Logger and Monitor default when nil.
type Components struct {
	Venue     Venue
	Books     *market.Store
	Inventory *inventory.Tracker
	Pricer    *strategy.Pricer
	Arbitrage *strategy.Arbitrage
	Logger    *logger.Logger
	Monitor   *monitor.Monitor
}

// Stats counts engine activity for session summaries.
type Stats struct {
	BookUpdates int64
	Quotes      int64
	Inserts     int64
	Cancels     int64
	Fills       int64
	HedgeOrders int64
	ArbOrders   int64
	DataFaults  int64
}

// Engine reconciles resting quotes against pricing targets, fires crossing
// orders and hedges fills. All handler methods must be called from a
// single goroutine; Run provides that serialization over an event channel.
type Engine struct {
	cfg   Config
	venue Venue
	books *market.Store
	inv   *inventory.Tracker
	price *strategy.Pricer
	arb   *strategy.Arbitrage
	log   *logger.Logger
	mon   *monitor.Monitor

	ids order.IDSource
	reg *order.Registry

	// slot ids; 0 means empty. One passive and one aggressive slot per side.
	passiveBid    int64
	passiveAsk    int64
	aggressiveBid int64
	aggressiveAsk int64

	hedgeSellPrice int64 // marketable price for sell hedges
	hedgeBuyPrice  int64 // marketable price for buy hedges

	stats Stats
}

// New builds an Engine. It returns an error when a required component is
// missing.
func New(cfg Config, c Components) (*Engine, error) {
	if c.Venue == nil || c.Inventory == nil || c.Pricer == nil || c.Arbitrage == nil {
		return nil, errors.New("engine: venue, inventory, pricer and arbitrage are required")
	}
	if c.Books == nil {
		c.Books = market.NewStore()
	}
	if c.Logger == nil {
		c.Logger = logger.NewNop()
	}
	if c.Monitor == nil {
		c.Monitor = monitor.New(monitor.DefaultConfig())
	}
	if cfg.TickSize <= 0 {
		return nil, errors.New("engine: tick size must be > 0")
	}
	return &Engine{
		cfg:            cfg,
		venue:          c.Venue,
		books:          c.Books,
		inv:            c.Inventory,
		price:          c.Pricer,
		arb:            c.Arbitrage,
		log:            c.Logger,
		mon:            c.Monitor,
		reg:            order.NewRegistry(),
		hedgeSellPrice: (cfg.MinimumBid + cfg.TickSize) / cfg.TickSize * cfg.TickSize,
		hedgeBuyPrice:  cfg.MaximumAsk / cfg.TickSize * cfg.TickSize,
	}, nil
}

// Run drains events until ctx is done or the channel closes. This is the
// single execution context all state mutation funnels through.
func (e *Engine) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.Handle(ev)
		}
	}
}

// Handle applies one event. Not safe for concurrent use.
func (e *Engine) Handle(ev Event) {
	switch ev := ev.(type) {
	case BookUpdate:
		e.OnBookUpdate(ev.Instrument, ev.Depth)
	case TradeTicks:
		e.OnTradeTicks(ev.Instrument, ev.Depth)
	case OrderFilled:
		e.OnOrderFilled(ev.OrderID, ev.Price, ev.Volume)
	case HedgeFilled:
		e.OnHedgeFilled(ev.OrderID, ev.Price, ev.Volume)
	case OrderStatus:
		e.OnOrderStatus(ev.OrderID, ev.FilledVolume, ev.RemainingVolume, ev.Fees)
	case VenueError:
		e.OnError(ev.OrderID, ev.Message)
	case Reconfigure:
		e.price.Reconfigure(ev.Pricer)
		e.arb.Reconfigure(ev.Arb)
		e.log.Info("policy reconfigured")
	}
}

// OnBookUpdate stores the snapshot and, for the tracked instrument, runs
// quote reconciliation and the crossing trigger.
func (e *Engine) OnBookUpdate(inst market.Instrument, d market.Depth) {
	e.stats.BookUpdates++
	e.mon.RecordBookUpdate(inst.String())
	if !e.books.Apply(inst, d) {
		e.log.Debug("stale snapshot dropped",
			zap.Stringer("instrument", inst),
			zap.Uint64("sequence", d.Sequence))
		return
	}
	if mid, ok := d.WeightedMid(); ok {
		e.mon.UpdateReferenceMid(inst.String(), mid)
	}
	if inst != market.Tracked {
		return
	}
	tracked, okT := e.books.Depth(market.Tracked)
	hedge, okH := e.books.Depth(market.Hedge)
	if !okT || !okH {
		e.log.Debug("awaiting first snapshot of both instruments")
		return
	}
	e.reconcile(tracked, hedge)
	e.evaluateCrossing(tracked, hedge)
	e.publishExposure()
}

// OnTradeTicks is informational only.
func (e *Engine) OnTradeTicks(inst market.Instrument, d market.Depth) {
	e.log.Debug("trade ticks",
		zap.Stringer("instrument", inst),
		zap.Uint64("sequence", d.Sequence))
}

// OnOrderFilled books the fill, releases working volume by the reported
// amount and dispatches the offsetting hedge order.
func (e *Engine) OnOrderFilled(id, price, volume int64) {
	w := e.reg.Lookup(id)
	if w == nil {
		e.log.Warn("fill for unknown order", zap.Int64("order_id", id))
		return
	}
	e.stats.Fills++
	e.inv.ApplyFill(w.Side, volume)
	e.mon.RecordFill(string(w.Side), volume)

	// Counters move by at most the order's last-known outstanding volume,
	// so a fill racing a cancel confirmation cannot double-subtract.
	release := volume
	if release > w.Outstanding {
		release = w.Outstanding
	}
	if release > 0 {
		e.inv.Release(w.Side, release)
		w.Outstanding -= release
	}

	e.log.LogFill(id, price, volume, e.inv.Position())
	e.dispatchHedge(w.Side, volume)

	if w.Outstanding == 0 && !w.PendingCancel {
		e.retire(w)
	}
	e.publishExposure()
}

// OnHedgeFilled logs the hedge execution; exposure on the tracked
// instrument is unaffected.
func (e *Engine) OnHedgeFilled(id, price, volume int64) {
	e.log.Info("hedge filled",
		zap.Int64("order_id", id),
		zap.Int64("price", price),
		zap.Int64("volume", volume))
}

// OnOrderStatus applies a fill-state report. Remaining volume zero retires
// the order; otherwise outstanding volume tracks the report.
func (e *Engine) OnOrderStatus(id, filled, remaining, fees int64) {
	w := e.reg.Lookup(id)
	if w == nil {
		e.log.Debug("status for unknown order",
			zap.Int64("order_id", id),
			zap.Int64("remaining", remaining))
		return
	}
	if remaining == 0 {
		if w.Outstanding > 0 {
			e.inv.Release(w.Side, w.Outstanding)
			w.Outstanding = 0
		}
		e.retire(w)
		e.log.LogOrder("terminal", id, zap.Int64("filled", filled), zap.Int64("fees", fees))
	} else if !w.PendingCancel {
		if delta := w.Outstanding - remaining; delta > 0 {
			e.inv.Release(w.Side, delta)
			w.Outstanding = remaining
		} else if delta < 0 {
			e.log.Warn("remaining volume grew",
				zap.Int64("order_id", id),
				zap.Int64("outstanding", w.Outstanding),
				zap.Int64("remaining", remaining))
		}
	}
	e.publishExposure()
}

// OnError treats order-specific errors as an implicit terminal status.
// Errors with id 0 or an unknown id are logged only.
func (e *Engine) OnError(id int64, message string) {
	e.mon.RecordVenueError()
	if id == 0 {
		e.log.Warn("venue error", zap.String("message", message))
		return
	}
	if e.reg.Lookup(id) == nil {
		e.log.Warn("error for unknown order",
			zap.Int64("order_id", id),
			zap.String("message", message))
		return
	}
	e.log.Warn("order rejected by venue",
		zap.Int64("order_id", id),
		zap.String("message", message))
	e.OnOrderStatus(id, 0, 0, 0)
}

// Stats returns a copy of the activity counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// reconcile cancels stale passive quotes and inserts fresh ones to match
// the pricing targets. A data fault leaves existing quotes untouched.
func (e *Engine) reconcile(tracked, hedge market.Depth) {
	q, err := e.price.Quotes(tracked, hedge, e.inv.Position())
	if err != nil {
		e.stats.DataFaults++
		e.mon.RecordDataFault()
		e.log.LogFault("crossed quote computation",
			zap.Int64("position", e.inv.Position()))
		return
	}
	e.stats.Quotes++
	e.mon.UpdateQuotes(q.BidPrice, q.AskPrice)

	e.reconcileSide(&e.passiveBid, order.Buy, q.BidPrice, q.BuySize)
	e.reconcileSide(&e.passiveAsk, order.Sell, q.AskPrice, q.SellSize)
}

// reconcileSide enforces the at-most-one-resting-order invariant for one
// passive slot against its target.
func (e *Engine) reconcileSide(slot *int64, side order.Side, targetPrice, targetSize int64) {
	if *slot != 0 {
		w := e.reg.Lookup(*slot)
		if w == nil {
			// slot/registry drift would be a bug; recover by emptying
			*slot = 0
		} else if targetSize == 0 || targetPrice == 0 || w.Price != targetPrice {
			e.cancel(w)
			*slot = 0
		}
	}
	if *slot == 0 && targetSize > 0 && targetPrice != 0 {
		if err := e.inv.Admit(side, targetSize); err != nil {
			e.mon.RecordLimitReject()
			e.log.Debug("insert suppressed by limit",
				zap.String("side", string(side)),
				zap.Int64("size", targetSize))
			return
		}
		if id, ok := e.insert(side, order.Passive, targetPrice, targetSize, order.Resting); ok {
			*slot = id
		}
	}
}

// evaluateCrossing fires bounded immediate-or-cancel orders when the
// tracked touch dislocates from the hedge touch.
func (e *Engine) evaluateCrossing(tracked, hedge market.Depth) {
	for _, sig := range e.arb.Signals(tracked, hedge) {
		slot := &e.aggressiveBid
		if sig.Side == order.Sell {
			slot = &e.aggressiveAsk
		}
		if *slot != 0 {
			continue // one live aggressive order per side
		}
		size := sig.Size
		if room := e.inv.Headroom(sig.Side, e.arb.Cap()); size > room {
			size = room
		}
		if size <= 0 {
			continue
		}
		if err := e.inv.Admit(sig.Side, size); err != nil {
			e.mon.RecordLimitReject()
			continue
		}
		if id, ok := e.insert(sig.Side, order.Aggressive, sig.Price, size, order.ImmediateOrCancel); ok {
			*slot = id
			e.stats.ArbOrders++
			e.mon.RecordArbTrigger(string(sig.Side))
			e.log.Info("crossing order fired",
				zap.Int64("order_id", id),
				zap.String("side", string(sig.Side)),
				zap.Int64("edge", sig.Edge),
				zap.Int64("size", size))
		}
	}
}

// insert sends a new order and registers it. On a local send failure the
// reservation is rolled back; venue-side rejections arrive as error events.
func (e *Engine) insert(side order.Side, kind order.Kind, price, volume int64, tif order.TimeInForce) (int64, bool) {
	id := e.ids.Next()
	e.inv.Reserve(side, volume)
	if err := e.venue.InsertOrder(id, side, price, volume, tif); err != nil {
		e.inv.Release(side, volume)
		e.log.Error("insert failed",
			zap.Int64("order_id", id),
			zap.Error(err))
		return 0, false
	}
	e.reg.Add(&order.Working{
		ID: id, Side: side, Kind: kind,
		Price: price, Volume: volume, Outstanding: volume,
	})
	e.stats.Inserts++
	e.mon.RecordOrderSent(kind.String(), string(side))
	e.log.LogOrder("insert", id,
		zap.String("kind", kind.String()),
		zap.String("side", string(side)),
		zap.Int64("price", price),
		zap.Int64("volume", volume))
	return id, true
}

// cancel requests a cancel and releases the order's working volume right
// away, so the freed slot is not blocked on the confirmation.
func (e *Engine) cancel(w *order.Working) {
	if err := e.venue.CancelOrder(w.ID); err != nil {
		e.log.Error("cancel failed", zap.Int64("order_id", w.ID), zap.Error(err))
	}
	if w.Outstanding > 0 {
		e.inv.Release(w.Side, w.Outstanding)
		w.Outstanding = 0
	}
	w.PendingCancel = true
	e.stats.Cancels++
	e.mon.RecordCancelSent()
	e.log.LogOrder("cancel", w.ID,
		zap.String("side", string(w.Side)),
		zap.Int64("price", w.Price))
}

// retire frees whatever slot still references the order and drops it from
// the registry.
func (e *Engine) retire(w *order.Working) {
	for _, slot := range []*int64{&e.passiveBid, &e.passiveAsk, &e.aggressiveBid, &e.aggressiveAsk} {
		if *slot == w.ID {
			*slot = 0
		}
	}
	e.reg.Remove(w.ID)
}

func (e *Engine) publishExposure() {
	e.mon.UpdateExposure(e.inv.Position(), e.inv.WorkingBuy(), e.inv.WorkingSell())
}
