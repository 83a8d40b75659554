package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rkotzy/promptuna/pkg/providers"
)

func TestChatCompletion_FoldsMessagesAndSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/models/gemini-1.5:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected the API key as a query parameter, got %q", r.URL.RawQuery)
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		si, ok := body["systemInstruction"].(map[string]interface{})
		if !ok {
			t.Fatalf("expected a systemInstruction, got %+v", body)
		}
		parts := si["parts"].([]interface{})
		if parts[0].(map[string]interface{})["text"] != "be terse" {
			t.Errorf("unexpected systemInstruction text: %+v", parts)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": "hi there"}}}, "finishReason": "STOP"},
			},
			"usageMetadata": map[string]int{"promptTokenCount": 4, "candidatesTokenCount": 2, "totalTokenCount": 6},
		})
	}))
	defer server.Close()

	adapter := New()
	resp, err := adapter.ChatCompletion(context.Background(), providers.Options{
		Model: "gemini-1.5",
		Messages: []providers.Message{
			{Role: "system", Content: "be terse"},
			{Role: "user", Content: "hello"},
		},
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "hi there" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Usage.TotalTokens != 6 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
}

func TestChatCompletion_JSONSchemaSetsResponseMimeType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		gc, ok := body["generationConfig"].(map[string]interface{})
		if !ok || gc["responseMimeType"] != "application/json" {
			t.Errorf("expected responseMimeType=application/json, got %+v", body["generationConfig"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []map[string]interface{}{}})
	}))
	defer server.Close()

	adapter := New()
	_, err := adapter.ChatCompletion(context.Background(), providers.Options{
		Model:          "gemini-1.5",
		Messages:       []providers.Message{{Role: "user", Content: "hi"}},
		ResponseFormat: providers.ResponseFormat{Type: "json_schema", Schema: map[string]interface{}{"type": "object"}},
		BaseURL:        server.URL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChatCompletion_NonRetryableOnBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	adapter := New()
	_, err := adapter.ChatCompletion(context.Background(), providers.Options{
		Model: "gemini-1.5", Messages: []providers.Message{{Role: "user", Content: "hi"}}, BaseURL: server.URL,
	})
	providerErr, ok := err.(*providers.ProviderError)
	if !ok || providerErr.Reason != providers.ReasonProviderError || providerErr.Retryable {
		t.Errorf("unexpected classification: %+v (err=%v)", providerErr, err)
	}
}

func TestAdapter_Type(t *testing.T) {
	if New().Type() != "google" {
		t.Errorf("Type() = %q, want %q", New().Type(), "google")
	}
}
