package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ProviderMetrics tracks metrics for outbound calls made by provider
// adapters during a fallback attempt loop.
type ProviderMetrics struct {
	health   *prometheus.GaugeVec
	latency  *prometheus.HistogramVec
	errors   *prometheus.CounterVec
	requests *prometheus.CounterVec
}

func newProviderMetrics(o *Options, registry *prometheus.Registry) *ProviderMetrics {
	pm := &ProviderMetrics{
		health: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "provider_health",
				Help:      "Provider health status (1=healthy, 0=unhealthy), informational only",
			},
			[]string{"provider"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "provider_latency_seconds",
				Help:      "Provider API call latency in seconds",
				Buckets:   o.RequestDurationBuckets,
			},
			[]string{"provider", "model"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "provider_errors_total",
				Help:      "Total number of provider errors by classified reason",
			},
			[]string{"provider", "reason"},
		),

		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.Namespace,
				Subsystem: o.Subsystem,
				Name:      "provider_requests_total",
				Help:      "Total number of attempts made against each provider/model",
			},
			[]string{"provider", "model"},
		),
	}

	registry.MustRegister(pm.health, pm.latency, pm.errors, pm.requests)
	return pm
}

// UpdateHealth reflects a providers.Health snapshot onto the gauge.
func (pm *ProviderMetrics) UpdateHealth(provider string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	pm.health.WithLabelValues(provider).Set(value)
}

// RecordLatency records one attempt's wall-clock latency.
func (pm *ProviderMetrics) RecordLatency(provider, model string, latencySeconds float64) {
	pm.latency.WithLabelValues(provider, model).Observe(latencySeconds)
}

// RecordError records a classified provider error (reason is one of
// providers.ReasonRateLimit, providers.ReasonTimeout,
// providers.ReasonProviderError).
func (pm *ProviderMetrics) RecordError(provider, reason string) {
	pm.errors.WithLabelValues(provider, reason).Inc()
}

// RecordRequest records one attempt against a provider/model pair.
func (pm *ProviderMetrics) RecordRequest(provider, model string) {
	pm.requests.WithLabelValues(provider, model).Inc()
}
