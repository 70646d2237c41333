// Package llm provides scene text generation against a local or remote
// model server. Two providers are available: the native Ollama API and any
// OpenAI-compatible endpoint.
package llm

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/scenarch/scenarch/pkg/domain"
)

// Request carries a generation prompt plus sampling parameters. Model
// overrides the provider's configured default when set.
type Request struct {
	Prompt string
	Model  string
	Params domain.SamplingParams
}

// Provider generates text from a prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	Models(ctx context.Context) ([]string, error)
}

// stripPolicy removes every HTML element from model output; models
// occasionally emit stray markup that would otherwise reach the client raw.
var stripPolicy = bluemonday.StrictPolicy()

// Sanitize strips HTML tags from generated text and normalizes whitespace
// at the edges.
func Sanitize(text string) string {
	clean := stripPolicy.Sanitize(text)
	return strings.TrimSpace(html.UnescapeString(clean))
}

// New creates a provider from its name. Supported providers are "ollama"
// and "openai".
func New(provider, endpoint, apiKey, model string) (Provider, error) {
	switch provider {
	case "ollama", "":
		return NewOllama(endpoint, model)
	case "openai":
		return NewOpenAI(endpoint, apiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
