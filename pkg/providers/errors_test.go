package providers

import (
	"context"
	"errors"
	"testing"
)

func TestClassifyHTTPStatus(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		reason    Reason
		retryable bool
	}{
		{"rate limit", 429, ReasonRateLimit, true},
		{"request timeout", 408, ReasonTimeout, true},
		{"gateway timeout", 504, ReasonTimeout, true},
		{"server error", 500, ReasonProviderError, false},
		{"bad request", 400, ReasonProviderError, false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyHTTPStatus(tt.status, "boom", nil)
			if err.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", err.Reason, tt.reason)
			}
			if err.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", err.Retryable, tt.retryable)
			}
			if err.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", err.HTTPStatus, tt.status)
			}
		})
	}
}

func TestClassifyTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	timeoutErr := ClassifyTransportError(cause, true)
	if timeoutErr.Reason != ReasonTimeout || !timeoutErr.Retryable {
		t.Errorf("expected a retryable timeout, got %+v", timeoutErr)
	}

	otherErr := ClassifyTransportError(cause, false)
	if otherErr.Reason != ReasonProviderError || otherErr.Retryable {
		t.Errorf("expected a non-retryable provider-error, got %+v", otherErr)
	}

	if !errors.Is(timeoutErr, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestProviderError_ErrorString(t *testing.T) {
	withStatus := &ProviderError{Reason: ReasonRateLimit, HTTPStatus: 429, Message: "too many requests"}
	if got, want := withStatus.Error(), "provider-error [rate-limit, status 429]: too many requests"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withoutStatus := &ProviderError{Reason: ReasonTimeout, Message: "deadline exceeded"}
	if got, want := withoutStatus.Error(), "provider-error [timeout]: deadline exceeded"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestClassifyTransportError_ContextDeadline(t *testing.T) {
	err := ClassifyTransportError(context.DeadlineExceeded, true)
	if err.Reason != ReasonTimeout || !err.Retryable {
		t.Errorf("expected a retryable timeout for a context deadline, got %+v", err)
	}
}
