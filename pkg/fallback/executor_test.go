package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/rkotzy/promptuna/pkg/providers"
)

func getProviderOK(providerType string) (providers.Provider, error) {
	return nil, nil
}

func TestExecute_FirstTargetSucceeds(t *testing.T) {
	targets := []Target{
		{ProviderID: "primary", ProviderType: "openai", Model: "gpt-4o-mini"},
		{ProviderID: "fallback", ProviderType: "openai", Model: "gpt-4o-mini"},
	}
	want := &providers.Response{ID: "resp-1"}

	var attempts []AttemptResult
	resp, err := Execute(context.Background(), targets,
		func(ctx context.Context, provider providers.Provider, target Target) (*providers.Response, error) {
			return want, nil
		},
		getProviderOK,
		func(r AttemptResult) { attempts = append(attempts, r) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != want {
		t.Errorf("expected the first attempt's response, got %+v", resp)
	}
	if len(attempts) != 1 || attempts[0].Err != nil {
		t.Errorf("expected one successful attempt report, got %+v", attempts)
	}
}

func TestExecute_RetryableErrorFallsThrough(t *testing.T) {
	targets := []Target{
		{ProviderID: "primary", ProviderType: "openai", Model: "m1"},
		{ProviderID: "fallback", ProviderType: "openai", Model: "m2"},
	}
	want := &providers.Response{ID: "resp-fallback"}

	var attempts []AttemptResult
	resp, err := Execute(context.Background(), targets,
		func(ctx context.Context, provider providers.Provider, target Target) (*providers.Response, error) {
			if target.ProviderID == "primary" {
				return nil, &providers.ProviderError{Reason: providers.ReasonRateLimit, Retryable: true, Message: "rate limited"}
			}
			return want, nil
		},
		getProviderOK,
		func(r AttemptResult) { attempts = append(attempts, r) },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != want {
		t.Errorf("expected the fallback target's response, got %+v", resp)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected two attempt reports, got %d", len(attempts))
	}
	if attempts[0].Err == nil {
		t.Error("expected the first attempt to report its retryable error")
	}
}

func TestExecute_NonRetryableErrorShortCircuits(t *testing.T) {
	targets := []Target{
		{ProviderID: "primary", ProviderType: "openai", Model: "m1"},
		{ProviderID: "fallback", ProviderType: "openai", Model: "m2"},
	}

	var calls int
	_, err := Execute(context.Background(), targets,
		func(ctx context.Context, provider providers.Provider, target Target) (*providers.Response, error) {
			calls++
			return nil, &providers.ProviderError{Reason: providers.ReasonProviderError, Retryable: false, Message: "bad request"}
		},
		getProviderOK, nil,
	)
	if err == nil {
		t.Fatal("expected the non-retryable error to propagate")
	}
	if calls != 1 {
		t.Errorf("expected exactly one attempt before short-circuiting, got %d", calls)
	}
}

func TestExecute_ExhaustsWithLastRetryableError(t *testing.T) {
	targets := []Target{
		{ProviderID: "primary", ProviderType: "openai", Model: "m1"},
		{ProviderID: "fallback", ProviderType: "openai", Model: "m2"},
	}
	last := &providers.ProviderError{Reason: providers.ReasonTimeout, Retryable: true, Message: "second timeout"}

	_, err := Execute(context.Background(), targets,
		func(ctx context.Context, provider providers.Provider, target Target) (*providers.Response, error) {
			if target.ProviderID == "primary" {
				return nil, &providers.ProviderError{Reason: providers.ReasonTimeout, Retryable: true, Message: "first timeout"}
			}
			return nil, last
		},
		getProviderOK, nil,
	)
	if err != last {
		t.Errorf("expected Execute to surface the last retryable error, got %v", err)
	}
}

func TestExecute_NonProviderErrorRethrownWithoutFallback(t *testing.T) {
	targets := []Target{
		{ProviderID: "primary", ProviderType: "openai", Model: "m1"},
		{ProviderID: "fallback", ProviderType: "openai", Model: "m2"},
	}
	fatal := errors.New("not a provider error")

	var calls int
	_, err := Execute(context.Background(), targets,
		func(ctx context.Context, provider providers.Provider, target Target) (*providers.Response, error) {
			calls++
			return nil, fatal
		},
		getProviderOK, nil,
	)
	if err != fatal {
		t.Errorf("expected the non-ProviderError to be rethrown as-is, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no further targets attempted, got %d calls", calls)
	}
}

func TestExecute_GetProviderFailureShortCircuits(t *testing.T) {
	targets := []Target{{ProviderID: "primary", ProviderType: "openai", Model: "m1"}}
	boom := errors.New("missing api key")

	_, err := Execute(context.Background(), targets,
		func(ctx context.Context, provider providers.Provider, target Target) (*providers.Response, error) {
			t.Fatal("attemptFn should not run when getProvider fails")
			return nil, nil
		},
		func(providerType string) (providers.Provider, error) { return nil, boom },
		nil,
	)
	if err != boom {
		t.Errorf("expected the getProvider error to propagate, got %v", err)
	}
}
