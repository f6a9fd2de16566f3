package engine

import (
	"go.uber.org/zap"

	"ready-trade-go/order"
)

// dispatchHedge issues the offsetting order on the hedge instrument for a
// fill of volume lots on fillSide. The price sits at the venue's valid
// extreme so the order always crosses the hedge book. There is no in-band
// retry: a failed hedge surfaces as an error event.
func (e *Engine) dispatchHedge(fillSide order.Side, volume int64) {
	side := fillSide.Opposite()
	price := e.hedgeBuyPrice
	if side == order.Sell {
		price = e.hedgeSellPrice
	}
	id := e.ids.Next()
	if err := e.venue.InsertHedgeOrder(id, side, price, volume); err != nil {
		e.log.Error("hedge order failed",
			zap.Int64("order_id", id),
			zap.String("side", string(side)),
			zap.Int64("volume", volume),
			zap.Error(err))
		return
	}
	e.stats.HedgeOrders++
	e.mon.RecordHedgeOrder(string(side))
	e.log.LogOrder("hedge", id,
		zap.String("side", string(side)),
		zap.Int64("price", price),
		zap.Int64("volume", volume))
}
