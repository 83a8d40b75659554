package orchestrator

import (
	"sync"

	"github.com/rkotzy/promptuna/pkg/config"
	"github.com/rkotzy/promptuna/pkg/errs"
	"github.com/rkotzy/promptuna/pkg/providerfactory"
	"github.com/rkotzy/promptuna/pkg/providers"
	"github.com/rkotzy/promptuna/pkg/telemetry/observability"
)

// Version identifies this engine build in emitted Observability events.
const Version = "0.1.0"

const (
	EnvironmentDev  = "dev"
	EnvironmentProd = "prod"
)

// RuntimeConfig is everything an Engine needs at construction. API keys
// are per provider type, not per provider alias — a config file can
// declare several aliases of the same type (two OpenAI accounts, say)
// and they share one key.
type RuntimeConfig struct {
	ConfigPath string

	OpenAIAPIKey    string
	AnthropicAPIKey string
	GoogleAPIKey    string

	// Environment is "dev" or "prod"; carried through to every emitted
	// Observability event.
	Environment string

	// OnObservability, when set, receives exactly one Event per
	// ChatCompletion call. It must not block or panic-propagate; see
	// pkg/telemetry/observability.Sink.
	OnObservability observability.Sink
}

// Engine is the stateful core a host process constructs once and
// shares across requests. It is safe for concurrent use.
type Engine struct {
	runtime RuntimeConfig

	configOnce sync.Once
	configMu   sync.RWMutex
	config     *config.Config
	configErr  error

	providersMu    sync.Mutex
	providerCaches map[string]*providerCacheEntry
}

type providerCacheEntry struct {
	once     sync.Once
	provider providers.Provider
	err      error
	health   providers.Health
}

// NewEngine constructs an Engine. Config is not loaded until the first
// GetTemplate or ChatCompletion call.
func NewEngine(runtime RuntimeConfig) *Engine {
	return &Engine{
		runtime:        runtime,
		providerCaches: make(map[string]*providerCacheEntry),
	}
}

// loadConfig returns the engine's cached Config, loading it on the
// first call. Concurrent first-callers share the single in-flight
// load, per spec §5; once resolved, later callers take the RLock fast
// path.
func (e *Engine) loadConfig() (*config.Config, error) {
	e.configOnce.Do(func() {
		cfg, err := config.Load(e.runtime.ConfigPath)
		e.configMu.Lock()
		e.config, e.configErr = cfg, err
		e.configMu.Unlock()
	})

	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.config, e.configErr
}

// providerFor returns the cached adapter for providerType, building it
// on the first request for that type. A second concurrent request for
// the same type blocks on the same in-flight build rather than racing
// a duplicate one.
func (e *Engine) providerFor(providerType string) (providers.Provider, error) {
	entry := e.cacheEntryFor(providerType)
	entry.once.Do(func() {
		entry.provider, entry.err = providerfactory.New(providerType)
	})
	return entry.provider, entry.err
}

// cacheEntryFor returns the providerCacheEntry for providerType, creating
// an empty one on first reference. Callers share this entry for both
// adapter construction and health bookkeeping.
func (e *Engine) cacheEntryFor(providerType string) *providerCacheEntry {
	e.providersMu.Lock()
	defer e.providersMu.Unlock()

	entry, ok := e.providerCaches[providerType]
	if !ok {
		entry = &providerCacheEntry{}
		e.providerCaches[providerType] = entry
	}
	return entry
}

// recordAttemptOutcome updates the informational health counters for
// providerType. It is called from the fallback executor's onAttempt
// callback and never influences routing or fallback decisions.
func (e *Engine) recordAttemptOutcome(providerType string, success bool) {
	entry := e.cacheEntryFor(providerType)
	if success {
		entry.health.RecordSuccess()
	} else {
		entry.health.RecordFailure()
	}
}

// ProviderHealth reports the informational health snapshot the engine
// has accumulated for providerType. A provider type never attempted
// reports healthy with zero counters.
func (e *Engine) ProviderHealth(providerType string) (consecutiveFailures, totalRequests, failedRequests int, healthy bool) {
	entry := e.cacheEntryFor(providerType)
	c, t, f := entry.health.Snapshot()
	return c, t, f, entry.health.IsHealthy()
}

// apiKeyFor returns the configured API key for a provider type, or
// empty if none was supplied.
func (e *Engine) apiKeyFor(providerType string) string {
	switch providerType {
	case config.ProviderTypeOpenAI:
		return e.runtime.OpenAIAPIKey
	case config.ProviderTypeAnthropic:
		return e.runtime.AnthropicAPIKey
	case config.ProviderTypeGoogle:
		return e.runtime.GoogleAPIKey
	default:
		return ""
	}
}

// resolveProvider is the fallback executor's GetProvider callback: it
// enforces the "missing API key for an invoked provider is a fatal
// execution-error" rule from spec §6 before handing back a cached
// adapter instance.
func (e *Engine) resolveProvider(providerType string) (providers.Provider, error) {
	if e.apiKeyFor(providerType) == "" {
		return nil, errs.NewExecutionError(
			"missing-api-key",
			"no API key configured for provider type "+providerType,
			map[string]interface{}{"provider": providerType},
		)
	}
	return e.providerFor(providerType)
}
