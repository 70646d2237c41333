package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAI generates text through any OpenAI-compatible chat completion
// endpoint. Used for hosted providers and local shims that do not speak the
// native Ollama protocol. The compatible surface drops top_k, min_p and
// context-length knobs; those are silently ignored here.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-compatible provider. An empty endpoint uses
// the official API base URL.
func NewOpenAI(endpoint, apiKey, model string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if endpoint != "" {
		cfg.BaseURL = endpoint
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg), model: model}
}

// Generate sends the prompt as a single user message and returns the
// completion text.
func (o *OpenAI) Generate(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            model,
		Temperature:      float32(req.Params.Temperature),
		MaxTokens:        req.Params.MaxTokens,
		TopP:             float32(req.Params.TopP),
		FrequencyPenalty: float32(req.Params.FrequencyPenalty),
		PresencePenalty:  float32(req.Params.PresencePenalty),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion with model %s: %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion with model %s: empty response", model)
	}
	return Sanitize(resp.Choices[0].Message.Content), nil
}

// Models lists the model IDs the endpoint reports.
func (o *OpenAI) Models(ctx context.Context) ([]string, error) {
	resp, err := o.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.ID)
	}
	return names, nil
}
