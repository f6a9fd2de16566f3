// Package inventory tracks net filled position and outstanding working
// volume per side, and owns the hard exposure limit.
package inventory

import (
	"errors"
	"sync"

	"ready-trade-go/order"
)

// ErrLimitExceeded is returned by Admit when an insert would breach the
// position limit.
var ErrLimitExceeded = errors.New("position limit exceeded")

// Tracker is the single source of truth for position and working volume.
// Invariant: position+workingBuy <= limit and position-workingSell >= -limit
// before any new order is admitted.
type Tracker struct {
	mu          sync.RWMutex
	position    int64
	workingBuy  int64
	workingSell int64
	limit       int64
}

func NewTracker(limit int64) *Tracker {
	return &Tracker{limit: limit}
}

// ApplyFill books a fill: buys increase position, sells decrease it.
// Call exactly once per fill notification with the reported volume.
func (t *Tracker) ApplyFill(side order.Side, volume int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if side == order.Buy {
		t.position += volume
	} else {
		t.position -= volume
	}
}

// Reserve adds volume to the side's working counter at insert time.
func (t *Tracker) Reserve(side order.Side, volume int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if side == order.Buy {
		t.workingBuy += volume
	} else {
		t.workingSell += volume
	}
}

// Release subtracts volume from the side's working counter. Called on
// cancel request and on fill/status acknowledgment, whichever lands first.
func (t *Tracker) Release(side order.Side, volume int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if side == order.Buy {
		t.workingBuy -= volume
		if t.workingBuy < 0 {
			t.workingBuy = 0
		}
	} else {
		t.workingSell -= volume
		if t.workingSell < 0 {
			t.workingSell = 0
		}
	}
}

// Admit reports whether size more working volume on side fits inside the
// limit given current position and outstanding orders.
func (t *Tracker) Admit(side order.Side, size int64) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if side == order.Buy {
		if t.position+t.workingBuy+size > t.limit {
			return ErrLimitExceeded
		}
	} else {
		if t.position-t.workingSell-size < -t.limit {
			return ErrLimitExceeded
		}
	}
	return nil
}

// Headroom returns how many lots side could add before position alone
// reaches cap. Working volume is not counted; used for the tighter
// aggressive-only cap which sits inside the main limit.
func (t *Tracker) Headroom(side order.Side, cap int64) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var free int64
	if side == order.Buy {
		free = cap - t.position
	} else {
		free = cap + t.position
	}
	if free < 0 {
		return 0
	}
	return free
}

// Position returns the signed net filled position.
func (t *Tracker) Position() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.position
}

// WorkingBuy returns outstanding buy volume across live orders.
func (t *Tracker) WorkingBuy() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workingBuy
}

// WorkingSell returns outstanding sell volume across live orders.
func (t *Tracker) WorkingSell() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.workingSell
}

// Limit returns the configured hard position limit.
func (t *Tracker) Limit() int64 {
	return t.limit
}
