package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// Transport is the base HTTP client every adapter embeds. Unlike the
// teacher's HTTPProvider, it never retries or backs off internally —
// pkg/fallback owns retry policy; Transport makes exactly one attempt
// per call and reports what happened.
type Transport struct {
	client *http.Client
}

// NewTransport builds a Transport with a connection-pooling client, in
// the teacher's http_provider.go idiom (shared *http.Transport, no
// per-call dialing).
func NewTransport(timeout time.Duration) *Transport {
	return &Transport{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
	}
}

// DoJSON issues one POST request with a JSON body, decodes a JSON
// response into out on 2xx, and returns a classified *ProviderError on
// any other outcome — non-2xx status, transport failure, or a response
// body that doesn't parse as JSON.
func (t *Transport) DoJSON(ctx context.Context, url string, headers map[string]string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ProviderError{Reason: ReasonProviderError, Retryable: false, Message: "encoding request body: " + err.Error(), Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &ProviderError{Reason: ReasonProviderError, Retryable: false, Message: "building request: " + err.Error(), Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return ClassifyTransportError(err, errors.Is(err, context.DeadlineExceeded))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Reason: ReasonProviderError, Retryable: false, Message: "reading response body: " + err.Error(), Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ClassifyHTTPStatus(resp.StatusCode, string(respBody), nil)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &ProviderError{Reason: ReasonProviderError, Retryable: false, Message: "decoding response body: " + err.Error(), Cause: err}
		}
	}
	return nil
}
