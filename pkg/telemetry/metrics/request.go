package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks metrics for completed chatCompletion calls,
// labeled by prompt and variant — provider-level detail lives in
// ProviderMetrics.
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	tokensTotal     *prometheus.CounterVec
}

func newRequestMetrics(o *Options, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of chatCompletion calls by prompt, variant, and outcome",
			},
			[]string{"prompt_id", "variant_id", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "End-to-end chatCompletion duration in seconds",
				Buckets:   o.RequestDurationBuckets,
			},
			[]string{"prompt_id", "variant_id"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "tokens_total",
				Help:      "Total tokens processed, split by prompt/completion",
			},
			[]string{"prompt_id", "variant_id", "type"},
		),
	}

	registry.MustRegister(rm.requestsTotal, rm.requestDuration, rm.tokensTotal)
	return rm
}

// RecordRequest records the outcome of one chatCompletion call.
func (rm *RequestMetrics) RecordRequest(promptID, variantID, status string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(promptID, variantID, status).Inc()
	rm.requestDuration.WithLabelValues(promptID, variantID).Observe(duration.Seconds())
}

// RecordTokens records prompt and completion token counts for a call.
func (rm *RequestMetrics) RecordTokens(promptID, variantID string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		rm.tokensTotal.WithLabelValues(promptID, variantID, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		rm.tokensTotal.WithLabelValues(promptID, variantID, "completion").Add(float64(completionTokens))
	}
}
