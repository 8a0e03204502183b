package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records outcomes of checkout commits.
type CheckoutMetrics struct {
	duration     *prometheus.HistogramVec
	lineOutcomes *prometheus.CounterVec
	stockShort   prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout commits in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	lineOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_line_outcomes_total",
		Help: "Checkout lines by per-line outcome.",
	}, []string{"outcome"})
	stockShort := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_insufficient_stock_total",
		Help: "Checkout lines rejected because stock ran out before commit.",
	})
	reg.MustRegister(duration, lineOutcomes, stockShort)
	return &CheckoutMetrics{
		duration:     duration,
		lineOutcomes: lineOutcomes,
		stockShort:   stockShort,
	}
}

// ObserveCommit records the duration of one commit with its terminal status.
func (c *CheckoutMetrics) ObserveCommit(status string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(status)).Observe(duration.Seconds())
}

// IncLineOutcome increments the per-line outcome counter.
func (c *CheckoutMetrics) IncLineOutcome(outcome string) {
	if c == nil || c.lineOutcomes == nil {
		return
	}
	c.lineOutcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncInsufficientStock counts a line that lost the race for remaining stock.
func (c *CheckoutMetrics) IncInsufficientStock() {
	if c == nil || c.stockShort == nil {
		return
	}
	c.stockShort.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
