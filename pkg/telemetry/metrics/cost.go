package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CostMetrics tracks estimated spend, derived from pkg/telemetry/costs,
// for each chatCompletion call.
type CostMetrics struct {
	costTotal      *prometheus.CounterVec
	costPerRequest *prometheus.HistogramVec
}

func newCostMetrics(o *Options, registry *prometheus.Registry) *CostMetrics {
	cm := &CostMetrics{
		costTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "cost_total",
				Help:      "Total estimated cost in USD by provider and model",
			},
			[]string{"provider", "model"},
		),

		costPerRequest: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "cost_per_request",
				Help:      "Estimated cost distribution per request in USD",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"provider", "model"},
		),
	}

	registry.MustRegister(cm.costTotal, cm.costPerRequest)
	return cm
}

// RecordRequestCost records one call's estimated cost.
func (cm *CostMetrics) RecordRequestCost(provider, model string, costUSD float64) {
	if costUSD <= 0 {
		return
	}
	cm.costTotal.WithLabelValues(provider, model).Add(costUSD)
	cm.costPerRequest.WithLabelValues(provider, model).Observe(costUSD)
}
