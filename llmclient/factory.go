package llmclient

import "fmt"

// NewBackend selects a concrete Backend by cfg.Provider.
func NewBackend(cfg Config) (Backend, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicBackend(cfg), nil
	case "openai":
		return NewOpenAIBackend(cfg), nil
	default:
		return nil, fmt.Errorf("llmclient: unknown provider %q", cfg.Provider)
	}
}
