// Package providerfactory builds a concrete providers.Provider for a
// provider type string. It has no knowledge of caching — the
// orchestrator's single-flight provider cache is the only caller, and
// owns the decision of when to build versus reuse.
package providerfactory

import (
	"fmt"

	"github.com/rkotzy/promptuna/pkg/config"
	"github.com/rkotzy/promptuna/pkg/providers"
	"github.com/rkotzy/promptuna/pkg/providers/anthropic"
	"github.com/rkotzy/promptuna/pkg/providers/google"
	"github.com/rkotzy/promptuna/pkg/providers/openai"
)

// New builds the adapter for providerType. An unsupported type is a
// configuration-style fatal error, per spec §4.5 ("module-not-found for
// the underlying SDK is a separate configuration-style fatal error") —
// here that maps onto "no adapter registered for this provider type".
func New(providerType string) (providers.Provider, error) {
	switch providerType {
	case config.ProviderTypeOpenAI:
		return openai.New(), nil
	case config.ProviderTypeAnthropic:
		return anthropic.New(), nil
	case config.ProviderTypeGoogle:
		return google.New(), nil
	default:
		return nil, &config.ConfigurationError{
			Kind: config.ErrorKindConfiguration,
			Errors: []config.FieldError{{
				Field:   "type",
				Message: fmt.Sprintf("no provider adapter registered for type %q", providerType),
			}},
		}
	}
}
