package metrics

// Options configures a Collector's namespace and enablement. Unlike the
// rest of the telemetry stack, metrics have no role in the
// Observability event itself — they are a side channel for operators,
// so disabling them never changes request behavior.
type Options struct {
	// Enabled gates every Record*/Update* call. False makes the
	// collector a no-op without the caller needing to branch.
	Enabled bool

	// Namespace and Subsystem prefix every metric name
	// ("<namespace>_<subsystem>_requests_total", etc).
	Namespace string
	Subsystem string

	// RequestDurationBuckets overrides the default latency histogram
	// buckets (seconds).
	RequestDurationBuckets []float64

	// TokenCountBuckets overrides the default token-count histogram
	// buckets.
	TokenCountBuckets []float64
}

func (o *Options) setDefaults() {
	if o.Namespace == "" {
		o.Namespace = "promptuna"
	}
	if len(o.RequestDurationBuckets) == 0 {
		o.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}
	if len(o.TokenCountBuckets) == 0 {
		o.TokenCountBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000}
	}
}
