package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nikolayk812/cartrecon/internal/domain"
)

const (
	labelKind      = "kind"
	labelOutcome   = "outcome"
	labelProductID = "product_id"

	outcomeOK       = "ok"
	outcomeRejected = "rejected"
)

// Metrics turns store events into Prometheus series.
type Metrics struct {
	Events    *prometheus.CounterVec
	Available *prometheus.GaugeVec
	CartLines prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_events_total",
				Help: "Cart commands by event kind and outcome",
			},
			[]string{labelKind, labelOutcome},
		),
		Available: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cart_inventory_available",
				Help: "Free units per product after the latest command touching it",
			},
			[]string{labelProductID},
		),
		CartLines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cart_lines",
				Help: "Lines in the active cart",
			},
		),
	}

	reg.MustRegister(m.Events, m.Available, m.CartLines)
	return m
}

func (m *Metrics) Publish(e domain.Event) {
	outcome := outcomeOK
	if e.Failed() {
		outcome = outcomeRejected
	}
	m.Events.WithLabelValues(string(e.Kind), outcome).Inc()

	if e.ProductID != 0 {
		m.Available.WithLabelValues(strconv.FormatInt(int64(e.ProductID), 10)).Set(float64(e.Available))
	}
	m.CartLines.Set(float64(e.CartLines))
}
