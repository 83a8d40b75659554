package openai

import (
	"context"
	"time"

	"github.com/rkotzy/promptuna/pkg/providers"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Adapter implements providers.Provider against OpenAI's chat
// completions endpoint.
type Adapter struct {
	transport *providers.Transport
}

func New() *Adapter {
	return &Adapter{transport: providers.NewTransport(60 * time.Second)}
}

func (a *Adapter) Type() string { return "openai" }

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type wireRequest struct {
	Model          string                 `json:"model"`
	Messages       []wireMessage          `json:"messages"`
	User           string                 `json:"user,omitempty"`
	ResponseFormat map[string]interface{} `json:"response_format,omitempty"`
}

type wireChoice struct {
	Index        int         `json:"index"`
	Message      wireMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type wireUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type wireResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []wireChoice `json:"choices"`
	Usage   *wireUsage   `json:"usage,omitempty"`
}

func (a *Adapter) ChatCompletion(ctx context.Context, opts providers.Options) (*providers.Response, error) {
	req := wireRequest{
		Model: opts.Model,
		User:  opts.UserID,
	}
	for _, m := range opts.Messages {
		req.Messages = append(req.Messages, wireMessage{Role: m.Role, Content: m.Content})
	}
	if opts.ResponseFormat.Type == "json_schema" {
		req.ResponseFormat = map[string]interface{}{
			"type": "json_schema",
			"json_schema": map[string]interface{}{
				"name":   "response",
				"schema": opts.ResponseFormat.Schema,
				"strict": true,
			},
		}
	}

	body := mergeParams(req, opts.Params)

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var wire wireResponse
	err := a.transport.DoJSON(ctx, baseURL+"/chat/completions", map[string]string{
		"Authorization": "Bearer " + opts.APIKey,
	}, body, &wire)
	if err != nil {
		return nil, err
	}

	resp := &providers.Response{ID: wire.ID, Model: wire.Model}
	for _, c := range wire.Choices {
		resp.Choices = append(resp.Choices, providers.Choice{
			Index:        c.Index,
			Message:      providers.Message{Role: c.Message.Role, Content: c.Message.Content},
			FinishReason: c.FinishReason,
		})
	}
	if wire.Usage != nil {
		resp.Usage = &providers.Usage{
			PromptTokens:     wire.Usage.PromptTokens,
			CompletionTokens: wire.Usage.CompletionTokens,
			TotalTokens:      wire.Usage.TotalTokens,
		}
	}
	return resp, nil
}

// mergeParams flattens the fixed wire fields and the provider-native
// parameter bag (already mapped by pkg/parammap) into one JSON object —
// OpenAI's API has no nested "parameters" envelope, every option is a
// top-level request field.
func mergeParams(req wireRequest, params map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{
		"model":    req.Model,
		"messages": req.Messages,
	}
	if req.User != "" {
		out["user"] = req.User
	}
	if req.ResponseFormat != nil {
		out["response_format"] = req.ResponseFormat
	}
	for k, v := range params {
		out[k] = v
	}
	return out
}
