package llmclient

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicBackend drives the Monitor LLM through the Anthropic Messages
// API. It is selected by Config.Provider == "anthropic".
type AnthropicBackend struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicBackend builds a backend from cfg. cfg.APIKey is used
// directly if set; otherwise the SDK falls back to ANTHROPIC_API_KEY via
// its own option defaults.
func NewAnthropicBackend(cfg Config) *AnthropicBackend {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := anthropic.Model(cfg.Model)
	if model == "" {
		model = anthropic.ModelClaudeSonnet4_5
	}

	return &AnthropicBackend{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

func (b *AnthropicBackend) Complete(ctx context.Context, system, user string, temperature *float64, maxTokens *int) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     b.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if maxTokens != nil {
		params.MaxTokens = int64(*maxTokens)
	}
	if temperature != nil {
		params.Temperature = anthropic.Float(*temperature)
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("llmclient: anthropic completion: %w", err)
	}

	var out string
	for _, block := range msg.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	return out, nil
}
