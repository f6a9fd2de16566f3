package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ready-trade-go/engine"
	"ready-trade-go/infrastructure/logger"
	"ready-trade-go/order"
)

// Config holds the venue session parameters.
type Config struct {
	URL    string
	Team   string
	Secret string
}

// Client is the live venue session. It implements engine.Venue for the
// outbound direction and feeds inbound frames into the event channel as a
// single reader goroutine, preserving delivery order.
type Client struct {
	conn *websocket.Conn
	log  *logger.Logger

	writeMu sync.Mutex // gorilla allows one concurrent writer

	events chan<- engine.Event
	done   chan struct{}
}

// Dial connects, authenticates and starts the read loop. The events
// channel is closed when the session ends, which stops engine.Run.
func Dial(ctx context.Context, cfg Config, events chan<- engine.Event, log *logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.NewNop()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial venue: %w", err)
	}
	c := &Client{
		conn:   conn,
		log:    log,
		events: events,
		done:   make(chan struct{}),
	}
	if err := c.write(loginFrame(cfg.Team, cfg.Secret)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("login: %w", err)
	}
	go c.readLoop()
	return c, nil
}

// InsertOrder sends a new order request. Fire-and-forget: acknowledgment
// arrives later as an order_status or error frame.
func (c *Client) InsertOrder(id int64, side order.Side, price, volume int64, tif order.TimeInForce) error {
	return c.write(insertFrame(id, side, price, volume, tif))
}

// CancelOrder requests a cancel for a live order.
func (c *Client) CancelOrder(id int64) error {
	return c.write(cancelFrame(id))
}

// InsertHedgeOrder sends an order on the hedge instrument.
func (c *Client) InsertHedgeOrder(id int64, side order.Side, price, volume int64) error {
	return c.write(hedgeFrame(id, side, price, volume))
}

// Close tears down the session and waits for the read loop to exit.
func (c *Client) Close() error {
	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Client) write(f outboundFrame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(f)
}

// readLoop is the only reader on the connection. Malformed frames are
// logged and skipped; a transport error ends the session.
func (c *Client) readLoop() {
	defer close(c.done)
	defer close(c.events)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Error("venue connection lost", zap.Error(err))
			} else {
				c.log.Info("venue connection closed")
			}
			return
		}
		ev, err := ParseFrame(raw)
		if err != nil {
			c.log.Warn("unparseable frame", zap.Error(err), zap.ByteString("raw", raw))
			continue
		}
		c.events <- ev
	}
}
