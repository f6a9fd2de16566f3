// Package monitor collects Prometheus metrics for the strategy core.
package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor owns a private registry so tests can run multiple instances.
type Monitor struct {
	registry *prometheus.Registry

	bookUpdates  *prometheus.CounterVec
	ordersSent   *prometheus.CounterVec
	cancelsSent  prometheus.Counter
	fills        *prometheus.CounterVec
	filledVolume *prometheus.CounterVec
	hedgeOrders  *prometheus.CounterVec
	arbTriggers  *prometheus.CounterVec
	limitRejects prometheus.Counter
	dataFaults   prometheus.Counter
	venueErrors  prometheus.Counter

	position    prometheus.Gauge
	workingBuy  prometheus.Gauge
	workingSell prometheus.Gauge
	bidQuote    prometheus.Gauge
	askQuote    prometheus.Gauge
	refMid      *prometheus.GaugeVec
}

// Config sets the metric namespace.
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig returns the default namespace.
func DefaultConfig() Config {
	return Config{Namespace: "rtg", Subsystem: "strategy"}
}

// New builds a Monitor with all metrics registered.
func New(cfg Config) *Monitor {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Monitor{
		registry: reg,
		bookUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "book_updates_total",
			Help: "Order book snapshots received",
		}, []string{"instrument"}),
		ordersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "orders_sent_total",
			Help: "Orders inserted, by kind and side",
		}, []string{"kind", "side"}),
		cancelsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "cancels_sent_total",
			Help: "Cancel requests issued",
		}),
		fills: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "fills_total",
			Help: "Fill notifications, by side",
		}, []string{"side"}),
		filledVolume: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "filled_volume_total",
			Help: "Filled lots, by side",
		}, []string{"side"}),
		hedgeOrders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "hedge_orders_total",
			Help: "Offsetting hedge orders issued, by side",
		}, []string{"side"}),
		arbTriggers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "arb_triggers_total",
			Help: "Aggressive crossing orders fired, by side",
		}, []string{"side"}),
		limitRejects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "limit_rejects_total",
			Help: "Inserts suppressed by the exposure limit",
		}),
		dataFaults: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "data_faults_total",
			Help: "Degenerate or crossed quote computations skipped",
		}),
		venueErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "venue_errors_total",
			Help: "Error messages received from the venue",
		}),
		position: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "position_lots",
			Help: "Signed net filled position",
		}),
		workingBuy: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "working_buy_lots",
			Help: "Outstanding buy volume across live orders",
		}),
		workingSell: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "working_sell_lots",
			Help: "Outstanding sell volume across live orders",
		}),
		bidQuote: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "bid_quote_cents",
			Help: "Current target bid price",
		}),
		askQuote: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "ask_quote_cents",
			Help: "Current target ask price",
		}),
		refMid: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace, Subsystem: cfg.Subsystem,
			Name: "reference_mid_cents",
			Help: "Volume-weighted mid price per instrument",
		}, []string{"instrument"}),
	}
	return m
}

func (m *Monitor) RecordBookUpdate(instrument string) { m.bookUpdates.WithLabelValues(instrument).Inc() }

func (m *Monitor) RecordOrderSent(kind, side string) { m.ordersSent.WithLabelValues(kind, side).Inc() }

func (m *Monitor) RecordCancelSent() { m.cancelsSent.Inc() }

func (m *Monitor) RecordFill(side string, volume int64) {
	m.fills.WithLabelValues(side).Inc()
	m.filledVolume.WithLabelValues(side).Add(float64(volume))
}

func (m *Monitor) RecordHedgeOrder(side string) { m.hedgeOrders.WithLabelValues(side).Inc() }

func (m *Monitor) RecordArbTrigger(side string) { m.arbTriggers.WithLabelValues(side).Inc() }

func (m *Monitor) RecordLimitReject() { m.limitRejects.Inc() }

func (m *Monitor) RecordDataFault() { m.dataFaults.Inc() }

func (m *Monitor) RecordVenueError() { m.venueErrors.Inc() }

func (m *Monitor) UpdateExposure(position, workingBuy, workingSell int64) {
	m.position.Set(float64(position))
	m.workingBuy.Set(float64(workingBuy))
	m.workingSell.Set(float64(workingSell))
}

func (m *Monitor) UpdateQuotes(bid, ask int64) {
	m.bidQuote.Set(float64(bid))
	m.askQuote.Set(float64(ask))
}

func (m *Monitor) UpdateReferenceMid(instrument string, mid float64) {
	m.refMid.WithLabelValues(instrument).Set(mid)
}

// Handler exposes the registry over HTTP.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}
