package google

import (
	"context"
	"strings"
	"time"

	"github.com/rkotzy/promptuna/pkg/providers"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Adapter implements providers.Provider against a Gemini-style
// generateContent endpoint.
type Adapter struct {
	transport *providers.Transport
}

func New() *Adapter {
	return &Adapter{transport: providers.NewTransport(60 * time.Second)}
}

func (a *Adapter) Type() string { return "google" }

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wireCandidate struct {
	Content      wireContent `json:"content"`
	FinishReason string      `json:"finishReason"`
}

type wireUsageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type wireResponse struct {
	Candidates    []wireCandidate    `json:"candidates"`
	UsageMetadata *wireUsageMetadata `json:"usageMetadata,omitempty"`
}

func (a *Adapter) ChatCompletion(ctx context.Context, opts providers.Options) (*providers.Response, error) {
	systemInstruction, prompt := foldToSinglePrompt(opts.Messages)

	generationConfig := map[string]interface{}{}
	for k, v := range opts.Params {
		generationConfig[k] = v
	}
	if opts.ResponseFormat.Type == "json_schema" {
		generationConfig["responseMimeType"] = "application/json"
		generationConfig["responseSchema"] = opts.ResponseFormat.Schema
	}

	body := map[string]interface{}{
		"contents": []wireContent{{Role: "user", Parts: []wirePart{{Text: prompt}}}},
	}
	if len(generationConfig) > 0 {
		body["generationConfig"] = generationConfig
	}
	if systemInstruction != "" {
		body["systemInstruction"] = wireContent{Parts: []wirePart{{Text: systemInstruction}}}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	var wire wireResponse
	err := a.transport.DoJSON(ctx, baseURL+"/models/"+opts.Model+":generateContent?key="+opts.APIKey, nil, body, &wire)
	if err != nil {
		return nil, err
	}

	resp := &providers.Response{Model: opts.Model}
	for i, c := range wire.Candidates {
		var text strings.Builder
		for _, p := range c.Content.Parts {
			text.WriteString(p.Text)
		}
		resp.Choices = append(resp.Choices, providers.Choice{
			Index:        i,
			Message:      providers.Message{Role: "assistant", Content: text.String()},
			FinishReason: c.FinishReason,
		})
	}
	if wire.UsageMetadata != nil {
		resp.Usage = &providers.Usage{
			PromptTokens:     wire.UsageMetadata.PromptTokenCount,
			CompletionTokens: wire.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      wire.UsageMetadata.TotalTokenCount,
		}
	}
	return resp, nil
}

// foldToSinglePrompt implements spec §4.5's Google-shaped folding:
// system messages fold into a system-instruction string, and everything
// else flattens into one prompt with "User: "/"Assistant: " prefixes
// joined by double newline.
func foldToSinglePrompt(messages []providers.Message) (string, string) {
	var systemParts []string
	var turns []string
	for _, m := range messages {
		if m.Role == "system" {
			systemParts = append(systemParts, m.Content)
			continue
		}
		prefix := "User: "
		if m.Role == "assistant" {
			prefix = "Assistant: "
		}
		turns = append(turns, prefix+m.Content)
	}
	return strings.Join(systemParts, "\n\n"), strings.Join(turns, "\n\n")
}
