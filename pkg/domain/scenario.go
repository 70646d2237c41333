package domain

import "time"

// Scenario is a saved generation result in the archive
type Scenario struct {
	ID        string
	Title     string
	Content   string
	Intensity Intensity
	CreatedAt time.Time
}

// Template is a named prompt template from the user's library
type Template struct {
	ID        string
	Name      string
	Content   string
	Params    SamplingParams
	CreatedAt time.Time
}

// SamplingParams are the model sampling knobs sent with every generation
// request. JSON names match the backend wire contract.
type SamplingParams struct {
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"max_tokens"`
	TopP             float64 `json:"top_p"`
	TopK             int     `json:"top_k"`
	MinP             float64 `json:"min_p"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty"`
	ContextLength    int     `json:"context_length"`
	RepeatPenalty    float64 `json:"repeat_penalty"`
}

// DefaultSamplingParams returns the stock sampling configuration.
func DefaultSamplingParams() SamplingParams {
	return SamplingParams{
		Temperature:      1.1,
		MaxTokens:        4096,
		TopP:             0.95,
		TopK:             80,
		MinP:             0.05,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
		ContextLength:    16384,
		RepeatPenalty:    1.1,
	}
}
