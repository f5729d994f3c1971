package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records gateway charge attempts by provider and outcome.
type PaymentMetrics struct {
	duration *prometheus.HistogramVec
	attempts *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_charge_duration_seconds",
		Help:    "Latency of payment gateway charge calls in seconds.",
		Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20},
	}, []string{"provider"})
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_charge_total",
		Help: "Payment gateway charge attempts by outcome.",
	}, []string{"provider", "outcome"})
	reg.MustRegister(duration, attempts)
	return &PaymentMetrics{
		duration: duration,
		attempts: attempts,
	}
}

// ObserveCharge records one charge attempt.
func (p *PaymentMetrics) ObserveCharge(provider, outcome string, elapsed time.Duration) {
	if p == nil || p.duration == nil || p.attempts == nil {
		return
	}
	provider = normalizeLabel(provider)
	p.duration.WithLabelValues(provider).Observe(elapsed.Seconds())
	p.attempts.WithLabelValues(provider, normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
