package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_NewCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: true}, registry)

	if collector == nil {
		t.Fatal("expected non-nil collector")
	}
	if collector.registry != registry {
		t.Error("collector registry not set correctly")
	}
}

func TestCollector_RecordRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: true}, registry)

	tests := []struct {
		name      string
		promptID  string
		variantID string
		status    string
		duration  time.Duration
	}{
		{"success", "summarize", "v2", "success", 1200 * time.Millisecond},
		{"error", "summarize", "v1", "error", 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordRequest(tt.promptID, tt.variantID, tt.status, tt.duration)

			count := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues(tt.promptID, tt.variantID, tt.status))
			if count < 1 {
				t.Errorf("expected request counter >= 1, got %f", count)
			}
		})
	}
}

func TestCollector_RecordTokens(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: true}, registry)

	collector.RecordTokens("summarize", "v2", 1000, 500)

	prompt := testutil.ToFloat64(collector.requestMetrics.tokensTotal.WithLabelValues("summarize", "v2", "prompt"))
	if prompt != 1000 {
		t.Errorf("expected prompt tokens = 1000, got %f", prompt)
	}
	completion := testutil.ToFloat64(collector.requestMetrics.tokensTotal.WithLabelValues("summarize", "v2", "completion"))
	if completion != 500 {
		t.Errorf("expected completion tokens = 500, got %f", completion)
	}
}

func TestCollector_ProviderMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: true}, registry)

	t.Run("update health", func(t *testing.T) {
		collector.UpdateProviderHealth("openai", true)
		if h := testutil.ToFloat64(collector.providerMetrics.health.WithLabelValues("openai")); h != 1.0 {
			t.Errorf("expected health=1.0, got %f", h)
		}

		collector.UpdateProviderHealth("openai", false)
		if h := testutil.ToFloat64(collector.providerMetrics.health.WithLabelValues("openai")); h != 0.0 {
			t.Errorf("expected health=0.0, got %f", h)
		}
	})

	t.Run("record error", func(t *testing.T) {
		collector.RecordProviderError("openai", "rate-limit")
		count := testutil.ToFloat64(collector.providerMetrics.errors.WithLabelValues("openai", "rate-limit"))
		if count < 1 {
			t.Errorf("expected error count >= 1, got %f", count)
		}
	})

	t.Run("record request", func(t *testing.T) {
		collector.RecordProviderRequest("openai", "gpt-4o")
		count := testutil.ToFloat64(collector.providerMetrics.requests.WithLabelValues("openai", "gpt-4o"))
		if count < 1 {
			t.Errorf("expected provider request count >= 1, got %f", count)
		}
	})
}

func TestCollector_RoutingMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: true}, registry)

	collector.RecordRoutingDecision("summarize", "phased-rollout")
	count := testutil.ToFloat64(collector.routingMetrics.decisionsTotal.WithLabelValues("summarize", "phased-rollout"))
	if count < 1 {
		t.Errorf("expected routing decision count >= 1, got %f", count)
	}
}

func TestCollector_FallbackMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: true}, registry)

	collector.RecordFallbackAttempt("summarize", 0, "retryable")
	collector.RecordFallbackAttempt("summarize", 1, "success")
	collector.RecordFallbackExhausted("summarize")

	attempt0 := testutil.ToFloat64(collector.fallbackMetrics.attemptsTotal.WithLabelValues("summarize", "0", "retryable"))
	if attempt0 < 1 {
		t.Errorf("expected position-0 attempt count >= 1, got %f", attempt0)
	}
	exhausted := testutil.ToFloat64(collector.fallbackMetrics.exhaustedTotal.WithLabelValues("summarize"))
	if exhausted < 1 {
		t.Errorf("expected exhausted count >= 1, got %f", exhausted)
	}
}

func TestCollector_CostMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: true}, registry)

	collector.RecordCost("openai", "gpt-4o", 0.05)
	cost := testutil.ToFloat64(collector.costMetrics.costTotal.WithLabelValues("openai", "gpt-4o"))
	if cost < 0.05 {
		t.Errorf("expected cost >= 0.05, got %f", cost)
	}
}

func TestCollector_Disabled(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: false}, registry)

	// None of these should panic, and none should move the underlying counters.
	collector.RecordRequest("summarize", "v2", "success", time.Second)
	collector.UpdateProviderHealth("openai", true)
	collector.RecordRoutingDecision("summarize", "hard-default")
	collector.RecordFallbackAttempt("summarize", 0, "success")

	count := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("summarize", "v2", "success"))
	if count != 0 {
		t.Errorf("expected no requests recorded while disabled, got %f", count)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	limiter := NewCardinalityLimiter(3)

	if !limiter.Allow("label1") || !limiter.Allow("label2") || !limiter.Allow("label3") {
		t.Error("expected first three labels to be allowed")
	}
	if limiter.Allow("label4") {
		t.Error("expected fourth label to be rejected")
	}
	if !limiter.Allow("label1") {
		t.Error("expected existing label to remain allowed")
	}
	if limiter.Count() != 3 {
		t.Errorf("expected count=3, got %d", limiter.Count())
	}
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewCollector(Options{Enabled: true}, registry)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				collector.RecordRequest("summarize", "v2", "success", time.Second)
				collector.UpdateProviderHealth("openai", true)
				collector.RecordRoutingDecision("summarize", "default-rules")
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	count := testutil.ToFloat64(collector.requestMetrics.requestsTotal.WithLabelValues("summarize", "v2", "success"))
	if count != 1000 {
		t.Errorf("expected 1000 requests, got %f", count)
	}
}
