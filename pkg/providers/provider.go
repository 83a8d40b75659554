package providers

import "context"

// Provider is the contract every concrete adapter (openai, anthropic,
// google) implements. A single call makes exactly one network attempt;
// the fallback executor, not the adapter, decides whether to retry.
type Provider interface {
	ChatCompletion(ctx context.Context, opts Options) (*Response, error)

	// Type returns the adapter's provider type string (openai,
	// anthropic, google), matching config.ProviderType*.
	Type() string
}
