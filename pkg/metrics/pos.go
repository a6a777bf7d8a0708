package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// POSMetrics records counters for till activity: checkouts by payment
// method, checkout latency, and day-end reconciliation outcomes.
type POSMetrics struct {
	checkouts       *prometheus.CounterVec
	checkoutLatency prometheus.Histogram
	dayEnds         prometheus.Counter
	dayEndVariance  prometheus.Counter
}

// NewPOSMetrics registers the till metrics on the provided registerer.
func NewPOSMetrics(reg prometheus.Registerer) *POSMetrics {
	if reg == nil {
		return &POSMetrics{}
	}
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_checkouts_total",
		Help: "Completed checkouts by payment method.",
	}, []string{"method"})
	checkoutLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_checkout_duration_seconds",
		Help:    "Duration of checkout transactions in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	dayEnds := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_day_ends_total",
		Help: "Completed day-end reconciliations.",
	})
	dayEndVariance := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_day_end_variance_total",
		Help: "Day-end reconciliations that closed with a nonzero cash variance.",
	})
	reg.MustRegister(checkouts, checkoutLatency, dayEnds, dayEndVariance)
	return &POSMetrics{
		checkouts:       checkouts,
		checkoutLatency: checkoutLatency,
		dayEnds:         dayEnds,
		dayEndVariance:  dayEndVariance,
	}
}

// IncCheckout increments the checkout counter for the payment method.
func (p *POSMetrics) IncCheckout(method string) {
	if p == nil || p.checkouts == nil {
		return
	}
	if method == "" {
		method = "unknown"
	}
	p.checkouts.WithLabelValues(method).Inc()
}

// ObserveCheckoutDuration records how long a checkout transaction took.
func (p *POSMetrics) ObserveCheckoutDuration(duration time.Duration) {
	if p == nil || p.checkoutLatency == nil {
		return
	}
	p.checkoutLatency.Observe(duration.Seconds())
}

// IncDayEnd increments the day-end counter; withVariance marks closes where
// counted cash did not match the expected drawer amount.
func (p *POSMetrics) IncDayEnd(withVariance bool) {
	if p == nil || p.dayEnds == nil {
		return
	}
	p.dayEnds.Inc()
	if withVariance {
		p.dayEndVariance.Inc()
	}
}
