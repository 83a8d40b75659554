package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RoutingMetrics counts which policy layer (pkg/router) resolved each
// request's variant.
type RoutingMetrics struct {
	decisionsTotal *prometheus.CounterVec
}

func newRoutingMetrics(o *Options, registry *prometheus.Registry) *RoutingMetrics {
	rm := &RoutingMetrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "routing_decisions_total",
				Help:      "Total routing decisions by prompt and the policy layer that resolved them",
			},
			[]string{"prompt_id", "reason"},
		),
	}

	registry.MustRegister(rm.decisionsTotal)
	return rm
}

// RecordDecision records which reason (tag-match, phased-rollout,
// weight-distribution, default) produced a variant selection.
func (rm *RoutingMetrics) RecordDecision(promptID, reason string) {
	rm.decisionsTotal.WithLabelValues(promptID, reason).Inc()
}
