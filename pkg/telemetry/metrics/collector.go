// Package metrics defines Prometheus collectors for requests, tokens,
// costs, routing decisions, provider calls and fallback attempts. No
// other package of this module records into them. Nothing here
// participates in the Observability event; it is purely an
// operator-facing side channel, and is safe to leave disabled.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector aggregates every metrics subsystem behind a single set of
// Record*/Update* methods, so the orchestrator doesn't need to know
// which Prometheus vector backs which call.
type Collector struct {
	opts     Options
	registry *prometheus.Registry

	requestMetrics  *RequestMetrics
	providerMetrics *ProviderMetrics
	routingMetrics  *RoutingMetrics
	fallbackMetrics *FallbackMetrics
	costMetrics     *CostMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a Collector registered against registry. A nil
// registry gets a fresh prometheus.Registry rather than the global
// default, so multiple Engine instances in the same process don't
// collide on metric names.
func NewCollector(opts Options, registry *prometheus.Registry) *Collector {
	opts.setDefaults()
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		opts:               opts,
		registry:           registry,
		requestMetrics:     newRequestMetrics(&opts, registry),
		providerMetrics:    newProviderMetrics(&opts, registry),
		routingMetrics:     newRoutingMetrics(&opts, registry),
		fallbackMetrics:    newFallbackMetrics(&opts, registry),
		costMetrics:        newCostMetrics(&opts, registry),
		cardinalityLimiter: NewCardinalityLimiter(10000),
	}
}

// RecordRequest records the terminal outcome of a chatCompletion call.
func (c *Collector) RecordRequest(promptID, variantID, status string, duration time.Duration) {
	if !c.opts.Enabled {
		return
	}
	if !c.cardinalityLimiter.Allow("request:" + promptID + ":" + variantID) {
		variantID = "other"
	}
	c.requestMetrics.RecordRequest(promptID, variantID, status, duration)
}

// RecordTokens records prompt/completion token usage for a call.
func (c *Collector) RecordTokens(promptID, variantID string, promptTokens, completionTokens int) {
	if !c.opts.Enabled {
		return
	}
	c.requestMetrics.RecordTokens(promptID, variantID, promptTokens, completionTokens)
}

// RecordCost records the call's estimated cost, from pkg/telemetry/costs.
func (c *Collector) RecordCost(provider, model string, costUSD float64) {
	if !c.opts.Enabled {
		return
	}
	c.costMetrics.RecordRequestCost(provider, model, costUSD)
}

// RecordRoutingDecision records which policy layer resolved a variant.
func (c *Collector) RecordRoutingDecision(promptID, reason string) {
	if !c.opts.Enabled {
		return
	}
	c.routingMetrics.RecordDecision(promptID, reason)
}

// RecordProviderLatency records one attempt's wall-clock latency.
func (c *Collector) RecordProviderLatency(provider, model string, latencySeconds float64) {
	if !c.opts.Enabled {
		return
	}
	c.providerMetrics.RecordLatency(provider, model, latencySeconds)
}

// RecordProviderRequest records an attempt against provider/model.
func (c *Collector) RecordProviderRequest(provider, model string) {
	if !c.opts.Enabled {
		return
	}
	c.providerMetrics.RecordRequest(provider, model)
}

// UpdateProviderHealth reflects a providers.Health snapshot.
func (c *Collector) UpdateProviderHealth(provider string, healthy bool) {
	if !c.opts.Enabled {
		return
	}
	c.providerMetrics.UpdateHealth(provider, healthy)
}

// RecordProviderError records a classified provider error.
func (c *Collector) RecordProviderError(provider, reason string) {
	if !c.opts.Enabled {
		return
	}
	c.providerMetrics.RecordError(provider, reason)
}

// RecordFallbackAttempt records one target attempt within a fallback chain.
func (c *Collector) RecordFallbackAttempt(promptID string, position int, outcome string) {
	if !c.opts.Enabled {
		return
	}
	c.fallbackMetrics.RecordAttempt(promptID, position, outcome)
}

// RecordFallbackExhausted records a request whose fallback chain never
// produced a successful attempt.
func (c *Collector) RecordFallbackExhausted(promptID string) {
	if !c.opts.Enabled {
		return
	}
	c.fallbackMetrics.RecordExhausted(promptID)
}

// Registry returns the underlying Prometheus registry, for wiring a
// promhttp handler if the embedding application wants one.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter bounds the number of distinct label combinations
// a single logical metric will accept, so a runaway variant/prompt
// naming scheme can't grow a histogram without bound.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter capped at maxCardinality
// distinct label sets.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet may be recorded: true if it has
// already been seen, or if the limit hasn't been reached yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}
	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
