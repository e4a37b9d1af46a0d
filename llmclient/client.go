// Package llmclient implements the downstream LLM client contract:
// a uniform Generate/GenerateWithSystem interface over pluggable provider
// backends, with a retrying wrapper that raises a typed error once the
// configured retry budget is exhausted.
package llmclient

import "context"

// Client is the contract Judges and RiskTests use to drive the "Monitor
// LLM" (the harness never calls an LLM through any other path — the "MAS
// LLM" is driven indirectly through the attached mas.Framework).
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithSystem(ctx context.Context, system, user string, temperature *float64, maxTokens *int) (string, error)
}

// Backend is the minimal provider-specific surface RetryingClient wraps.
// Concrete backends (AnthropicBackend, OpenAIBackend, FakeBackend) each
// implement this without knowing about retry policy.
type Backend interface {
	Complete(ctx context.Context, system, user string, temperature *float64, maxTokens *int) (string, error)
}
