package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a reasoning provider based on configuration.
// An empty provider name disables reasoning: the pipeline then falls back
// to a Conditional result rather than inventing an answer.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
