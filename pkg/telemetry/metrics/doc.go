// Package metrics provides Prometheus metrics for a running Engine.
//
// # Metrics Categories
//
//   - Request: call count, duration, and token usage by prompt/variant
//   - Provider: per-provider latency, error rate, and health
//   - Routing: which policy layer resolved each variant
//   - Fallback: per-target attempt outcome and chain exhaustion
//   - Cost: estimated spend by provider/model
//
// # Usage
//
//	collector := metrics.NewCollector(metrics.Options{Enabled: true}, nil)
//	collector.RecordRequest("summarize", "v2", "success", time.Second)
//	collector.RecordProviderLatency("openai", "gpt-4o", 0.95)
//	http.Handle("/metrics", collector.Handler())
//
// # Cardinality
//
// A CardinalityLimiter caps distinct prompt/variant label combinations
// at 10,000; beyond that, the variant label collapses to "other" so a
// runaway naming scheme can't grow a histogram without bound.
package metrics
