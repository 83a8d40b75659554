package orchestrator

import (
	"fmt"

	"github.com/rkotzy/promptuna/pkg/config"
	"github.com/rkotzy/promptuna/pkg/errs"
	"github.com/rkotzy/promptuna/pkg/providers"
	"github.com/rkotzy/promptuna/pkg/router"
	"github.com/rkotzy/promptuna/pkg/template"
)

// GetTemplateParams names the variant explicitly — GetTemplate never
// consults the router.
type GetTemplateParams struct {
	PromptID  string
	VariantID string
	Variables map[string]interface{}
}

// GetTemplate resolves promptId/variantId and renders every message
// template against Variables. It never routes, never touches a
// provider, and never emits telemetry, per spec §4.8.
func (e *Engine) GetTemplate(params GetTemplateParams) ([]providers.Message, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, err
	}

	prompt, ok := cfg.Prompts[params.PromptID]
	if !ok {
		return nil, errs.NewExecutionError("unknown-prompt", fmt.Sprintf("prompt %q does not exist", params.PromptID), map[string]interface{}{
			"promptId": params.PromptID,
		})
	}

	sel, err := router.Resolve(prompt, params.PromptID, params.VariantID)
	if err != nil {
		return nil, err
	}

	return renderMessages(sel.Variant.Messages, params.Variables)
}

// renderMessages renders every message template in order.
func renderMessages(templates []config.MessageTemplate, vars map[string]interface{}) ([]providers.Message, error) {
	rendered := make([]providers.Message, 0, len(templates))
	for _, mt := range templates {
		content, err := template.Render(mt.Content.Template, vars)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, providers.Message{Role: mt.Role, Content: content})
	}
	return rendered, nil
}
