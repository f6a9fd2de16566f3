package order

import "sync/atomic"

// IDSource hands out strictly increasing order ids. One source is shared
// across passive, aggressive and hedge orders for the whole session.
type IDSource struct {
	last atomic.Int64
}

// Next returns the next unused id, starting from 1.
func (s *IDSource) Next() int64 {
	return s.last.Add(1)
}

// Registry maps live order ids to their working state. The kind and side
// are resolved once at insert time, so callbacks never scan per-slot maps
// to discover what an id refers to.
type Registry struct {
	orders map[int64]*Working
}

func NewRegistry() *Registry {
	return &Registry{orders: make(map[int64]*Working)}
}

// Add registers a freshly inserted order.
func (r *Registry) Add(w *Working) {
	r.orders[w.ID] = w
}

// Lookup returns the working order for id, or nil.
func (r *Registry) Lookup(id int64) *Working {
	return r.orders[id]
}

// Remove drops a terminal order.
func (r *Registry) Remove(id int64) {
	delete(r.orders, id)
}

// Len returns the number of live orders.
func (r *Registry) Len() int {
	return len(r.orders)
}
