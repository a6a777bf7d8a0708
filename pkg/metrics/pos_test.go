package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPOSMetricsRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPOSMetrics(reg)

	m.IncCheckout("cash")
	m.IncCheckout("cash")
	m.IncCheckout("credit")
	m.ObserveCheckoutDuration(25 * time.Millisecond)
	m.IncDayEnd(true)
	m.IncDayEnd(false)

	if got := testutil.ToFloat64(m.checkouts.WithLabelValues("cash")); got != 2 {
		t.Fatalf("expected 2 cash checkouts, got %v", got)
	}
	if got := testutil.ToFloat64(m.checkouts.WithLabelValues("credit")); got != 1 {
		t.Fatalf("expected 1 credit checkout, got %v", got)
	}
	if got := testutil.ToFloat64(m.dayEnds); got != 2 {
		t.Fatalf("expected 2 day ends, got %v", got)
	}
	if got := testutil.ToFloat64(m.dayEndVariance); got != 1 {
		t.Fatalf("expected 1 variance close, got %v", got)
	}
}

func TestPOSMetricsNilRegisterer(t *testing.T) {
	m := NewPOSMetrics(nil)

	// All recorders must be safe no-ops without a registry.
	m.IncCheckout("cash")
	m.ObserveCheckoutDuration(time.Second)
	m.IncDayEnd(true)
}
