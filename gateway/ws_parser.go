// Package gateway implements the venue session boundary: a websocket
// client carrying JSON frames in both directions.
package gateway

import (
	"encoding/json"
	"fmt"

	"ready-trade-go/engine"
	"ready-trade-go/market"
	"ready-trade-go/order"
)

// Inbound frame types.
const (
	frameBookUpdate  = "book_update"
	frameTradeTicks  = "trade_ticks"
	frameOrderFilled = "order_filled"
	frameHedgeFilled = "hedge_filled"
	frameOrderStatus = "order_status"
	frameError       = "error"
)

// inboundFrame is the union of all venue-to-client messages.
type inboundFrame struct {
	Type            string  `json:"type"`
	Instrument      int     `json:"instrument"`
	Sequence        uint64  `json:"sequence"`
	AskPrices       []int64 `json:"askPrices"`
	AskVolumes      []int64 `json:"askVolumes"`
	BidPrices       []int64 `json:"bidPrices"`
	BidVolumes      []int64 `json:"bidVolumes"`
	OrderID         int64   `json:"orderId"`
	Price           int64   `json:"price"`
	Volume          int64   `json:"volume"`
	FilledVolume    int64   `json:"filledVolume"`
	RemainingVolume int64   `json:"remainingVolume"`
	Fees            int64   `json:"fees"`
	Message         string  `json:"message"`
}

// ParseFrame decodes one raw frame into an engine event.
func ParseFrame(raw []byte) (engine.Event, error) {
	var f inboundFrame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	switch f.Type {
	case frameBookUpdate:
		inst, err := instrumentOf(f.Instrument)
		if err != nil {
			return nil, err
		}
		return engine.BookUpdate{Instrument: inst, Depth: f.depth()}, nil
	case frameTradeTicks:
		inst, err := instrumentOf(f.Instrument)
		if err != nil {
			return nil, err
		}
		return engine.TradeTicks{Instrument: inst, Depth: f.depth()}, nil
	case frameOrderFilled:
		return engine.OrderFilled{OrderID: f.OrderID, Price: f.Price, Volume: f.Volume}, nil
	case frameHedgeFilled:
		return engine.HedgeFilled{OrderID: f.OrderID, Price: f.Price, Volume: f.Volume}, nil
	case frameOrderStatus:
		return engine.OrderStatus{
			OrderID:         f.OrderID,
			FilledVolume:    f.FilledVolume,
			RemainingVolume: f.RemainingVolume,
			Fees:            f.Fees,
		}, nil
	case frameError:
		return engine.VenueError{OrderID: f.OrderID, Message: f.Message}, nil
	default:
		return nil, fmt.Errorf("unknown frame type %q", f.Type)
	}
}

func (f inboundFrame) depth() market.Depth {
	d := market.Depth{Sequence: f.Sequence}
	copyLevels(d.AskPrices[:], f.AskPrices)
	copyLevels(d.AskVolumes[:], f.AskVolumes)
	copyLevels(d.BidPrices[:], f.BidPrices)
	copyLevels(d.BidVolumes[:], f.BidVolumes)
	return d
}

func copyLevels(dst []int64, src []int64) {
	for i := 0; i < len(dst) && i < len(src); i++ {
		dst[i] = src[i]
	}
}

func instrumentOf(v int) (market.Instrument, error) {
	switch v {
	case 0:
		return market.Tracked, nil
	case 1:
		return market.Hedge, nil
	default:
		return 0, fmt.Errorf("unknown instrument %d", v)
	}
}

// outboundFrame is the union of all client-to-venue messages.
type outboundFrame struct {
	Type        string `json:"type"`
	Team        string `json:"team,omitempty"`
	Secret      string `json:"secret,omitempty"`
	OrderID     int64  `json:"orderId,omitempty"`
	Side        string `json:"side,omitempty"`
	Price       int64  `json:"price,omitempty"`
	Volume      int64  `json:"volume,omitempty"`
	TimeInForce string `json:"timeInForce,omitempty"`
}

func loginFrame(team, secret string) outboundFrame {
	return outboundFrame{Type: "login", Team: team, Secret: secret}
}

func insertFrame(id int64, side order.Side, price, volume int64, tif order.TimeInForce) outboundFrame {
	t := "RESTING"
	if tif == order.ImmediateOrCancel {
		t = "IMMEDIATE_OR_CANCEL"
	}
	return outboundFrame{
		Type: "insert_order", OrderID: id, Side: string(side),
		Price: price, Volume: volume, TimeInForce: t,
	}
}

func cancelFrame(id int64) outboundFrame {
	return outboundFrame{Type: "cancel_order", OrderID: id}
}

func hedgeFrame(id int64, side order.Side, price, volume int64) outboundFrame {
	return outboundFrame{
		Type: "insert_hedge_order", OrderID: id, Side: string(side),
		Price: price, Volume: volume,
	}
}
