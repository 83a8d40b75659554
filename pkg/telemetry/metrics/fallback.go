package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// FallbackMetrics counts attempts made by pkg/fallback's executor and
// how each request's attempt loop ultimately ended.
type FallbackMetrics struct {
	attemptsTotal  *prometheus.CounterVec
	exhaustedTotal *prometheus.CounterVec
}

func newFallbackMetrics(o *Options, registry *prometheus.Registry) *FallbackMetrics {
	fm := &FallbackMetrics{
		attemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "fallback_attempts_total",
				Help:      "Total fallback target attempts by position in the chain and outcome",
			},
			[]string{"prompt_id", "position", "outcome"},
		),

		exhaustedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "fallback_chain_exhausted_total",
				Help:      "Requests where every target in the fallback chain failed",
			},
			[]string{"prompt_id"},
		),
	}

	registry.MustRegister(fm.attemptsTotal, fm.exhaustedTotal)
	return fm
}

// RecordAttempt records one target attempt. position is 0 for the
// primary, 1+ for fallbacks. outcome is "success", "retryable", or
// "terminal".
func (fm *FallbackMetrics) RecordAttempt(promptID string, position int, outcome string) {
	fm.attemptsTotal.WithLabelValues(promptID, strconv.Itoa(position), outcome).Inc()
}

// RecordExhausted records a request whose entire fallback chain failed.
func (fm *FallbackMetrics) RecordExhausted(promptID string) {
	fm.exhaustedTotal.WithLabelValues(promptID).Inc()
}
