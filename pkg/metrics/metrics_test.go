package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPaymentMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewPaymentMetrics(reg)
	metrics.ObserveCharge("stripe", "success", 250*time.Millisecond)
	metrics.ObserveCharge("stripe", "declined", 100*time.Millisecond)
	metrics.ObserveCharge("stripe", "success", 50*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "payment_charge_total", map[string]string{"provider": "stripe", "outcome": "success"}); err != nil {
		t.Fatalf("fetch success: %v", err)
	} else if got != 2 {
		t.Fatalf("expected success=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "payment_charge_total", map[string]string{"provider": "stripe", "outcome": "declined"}); err != nil {
		t.Fatalf("fetch declined: %v", err)
	} else if got != 1 {
		t.Fatalf("expected declined=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "payment_charge_duration_seconds", map[string]string{"provider": "stripe"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestOutboxMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOutboxMetrics(reg)
	metrics.IncPublished("order_paid")
	metrics.IncFailed("")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "outbox_published_total", map[string]string{"event_type": "order_paid"}); err != nil || got != 1 {
		t.Fatalf("expected published=1, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "outbox_publish_failures_total", map[string]string{"event_type": "unknown"}); err != nil || got != 1 {
		t.Fatalf("expected failed=1 under unknown label, got %f (%v)", got, err)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var p *PaymentMetrics
	p.ObserveCharge("square", "success", time.Second)
	NewPaymentMetrics(nil).ObserveCharge("square", "success", time.Second)

	var o *OutboxMetrics
	o.IncPublished("order_paid")
	o.IncFailed("order_paid")

	var c *CronJobMetrics
	c.IncSuccess("outbox-retention")
	c.SetParked(3)
}

func TestCronJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCronJobMetrics(reg)
	metrics.ObserveDuration("outbox-retention", 2*time.Second)
	metrics.IncSuccess("outbox-retention")
	metrics.IncFailure("outbox-parked-report")
	metrics.SetParked(4)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "job_success_total", map[string]string{"job": "outbox-retention"}); err != nil || got != 1 {
		t.Fatalf("expected success=1, got %f (%v)", got, err)
	}
	if got, err := fetchCounterValue(mfs, "job_failure_total", map[string]string{"job": "outbox-parked-report"}); err != nil || got != 1 {
		t.Fatalf("expected failure=1, got %f (%v)", got, err)
	}
	if got, err := fetchHistogramSum(mfs, "job_duration_seconds", map[string]string{"job": "outbox-retention"}); err != nil || got != 2 {
		t.Fatalf("expected duration sum=2, got %f (%v)", got, err)
	}
	parked := findMetricFamily(mfs, "outbox_parked_events")
	if parked == nil || parked.GetMetric()[0].GetGauge().GetValue() != 4 {
		t.Fatalf("expected parked gauge 4")
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
