package fallback

import (
	"context"

	"github.com/rkotzy/promptuna/pkg/providers"
)

// Target is one entry of the ordered {providerId, providerType, model}
// list Execute walks. Element zero is always the primary.
type Target struct {
	ProviderID   string
	ProviderType string
	Model        string
}

// AttemptResult is passed to onAttempt after every target is tried,
// whether it succeeded or failed.
type AttemptResult struct {
	Target Target
	Err    error
}

// AttemptFn performs one call against a resolved provider instance.
type AttemptFn func(ctx context.Context, provider providers.Provider, target Target) (*providers.Response, error)

// GetProvider resolves a provider instance for a target's provider type.
type GetProvider func(providerType string) (providers.Provider, error)

// OnAttempt, when non-nil, is invoked after every attempt.
type OnAttempt func(AttemptResult)

// Execute implements spec §4.6's fallback algorithm: for each target in
// order, resolve a provider, call attemptFn. On success, report and
// return. On a *providers.ProviderError: report it; a non-retryable
// error short-circuits immediately, a retryable one is remembered and
// the loop continues to the next target. Any other error type is
// rethrown without trying further targets. Exhausting the list with
// only retryable errors surfaces the last one.
func Execute(ctx context.Context, targets []Target, attemptFn AttemptFn, getProvider GetProvider, onAttempt OnAttempt) (*providers.Response, error) {
	var lastRetryable error

	for _, target := range targets {
		provider, err := getProvider(target.ProviderType)
		if err != nil {
			return nil, err
		}

		resp, err := attemptFn(ctx, provider, target)
		if err == nil {
			report(onAttempt, AttemptResult{Target: target})
			return resp, nil
		}

		providerErr, ok := err.(*providers.ProviderError)
		if !ok {
			return nil, err
		}

		report(onAttempt, AttemptResult{Target: target, Err: providerErr})
		if !providerErr.Retryable {
			return nil, providerErr
		}
		lastRetryable = providerErr
	}

	return nil, lastRetryable
}

func report(onAttempt OnAttempt, result AttemptResult) {
	if onAttempt != nil {
		onAttempt(result)
	}
}
