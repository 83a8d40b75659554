package anthropic

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rkotzy/promptuna/pkg/providers"
)

const defaultBaseURL = "https://api.anthropic.com/v1"
const anthropicVersion = "2023-06-01"
const structuredOutputToolName = "emit_response"

// Adapter implements providers.Provider against Anthropic's messages
// endpoint.
type Adapter struct {
	transport *providers.Transport
}

func New() *Adapter {
	return &Adapter{transport: providers.NewTransport(60 * time.Second)}
}

func (a *Adapter) Type() string { return "anthropic" }

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireTool struct {
	Name        string                 `json:"name"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

type wireToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type wireContentBlock struct {
	Type  string                 `json:"type"`
	Text  string                 `json:"text,omitempty"`
	Name  string                 `json:"name,omitempty"`
	Input map[string]interface{} `json:"input,omitempty"`
}

type wireUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type wireResponse struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	StopReason string             `json:"stop_reason"`
	Content    []wireContentBlock `json:"content"`
	Usage      wireUsage          `json:"usage"`
}

func (a *Adapter) ChatCompletion(ctx context.Context, opts providers.Options) (*providers.Response, error) {
	system, conversation := foldSystemMessages(opts.Messages)

	body := map[string]interface{}{
		"model":    opts.Model,
		"messages": conversation,
	}
	if system != "" {
		body["system"] = system
	}
	for k, v := range opts.Params {
		body[k] = v
	}
	if opts.ResponseFormat.Type == "json_schema" {
		body["tools"] = []wireTool{{Name: structuredOutputToolName, InputSchema: opts.ResponseFormat.Schema}}
		body["tool_choice"] = wireToolChoice{Type: "tool", Name: structuredOutputToolName}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var wire wireResponse
	err := a.transport.DoJSON(ctx, baseURL+"/messages", map[string]string{
		"x-api-key":         opts.APIKey,
		"anthropic-version": anthropicVersion,
	}, body, &wire)
	if err != nil {
		return nil, err
	}

	content, err := extractContent(wire.Content, opts.ResponseFormat.Type == "json_schema")
	if err != nil {
		return nil, err
	}

	return &providers.Response{
		ID:    wire.ID,
		Model: wire.Model,
		Choices: []providers.Choice{{
			Index:        0,
			Message:      providers.Message{Role: "assistant", Content: content},
			FinishReason: wire.StopReason,
		}},
		Usage: &providers.Usage{
			PromptTokens:     wire.Usage.InputTokens,
			CompletionTokens: wire.Usage.OutputTokens,
			TotalTokens:      wire.Usage.InputTokens + wire.Usage.OutputTokens,
		},
	}, nil
}

// foldSystemMessages implements spec §4.5's Anthropic-shaped folding:
// every system message joins into one prefix separated by double
// newlines; everything else becomes the conversation, role unchanged.
func foldSystemMessages(messages []providers.Message) (string, []wireMessage) {
	var systemParts []string
	conversation := make([]wireMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role == "system" {
			systemParts = append(systemParts, m.Content)
			continue
		}
		conversation = append(conversation, wireMessage{Role: m.Role, Content: m.Content})
	}
	return strings.Join(systemParts, "\n\n"), conversation
}

// extractContent returns the model's reply text. For structured output
// it is the forced tool call's JSON input, re-serialized; otherwise it
// is the concatenation of the response's text blocks.
func extractContent(blocks []wireContentBlock, structured bool) (string, error) {
	if structured {
		for _, b := range blocks {
			if b.Type == "tool_use" && b.Name == structuredOutputToolName {
				out, err := json.Marshal(b.Input)
				if err != nil {
					return "", &providers.ProviderError{Reason: providers.ReasonProviderError, Retryable: false, Message: "encoding structured tool input: " + err.Error(), Cause: err}
				}
				return string(out), nil
			}
		}
		return "", &providers.ProviderError{Reason: providers.ReasonProviderError, Retryable: false, Message: "no forced tool_use block in response"}
	}

	var parts []string
	for _, b := range blocks {
		if b.Type == "text" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, ""), nil
}
