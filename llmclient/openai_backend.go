package llmclient

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIBackend drives the Monitor LLM through the OpenAI Chat Completions
// API. It is selected by Config.Provider == "openai".
type OpenAIBackend struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIBackend builds a backend from cfg. cfg.APIKey is used directly
// if set; otherwise the SDK falls back to OPENAI_API_KEY via its own
// option defaults.
func NewOpenAIBackend(cfg Config) *OpenAIBackend {
	opts := []option.RequestOption{}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = openai.ChatModelGPT4o
	}

	return &OpenAIBackend{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (b *OpenAIBackend) Complete(ctx context.Context, system, user string, temperature *float64, maxTokens *int) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(user))

	params := openai.ChatCompletionNewParams{
		Model:    b.model,
		Messages: messages,
	}
	if temperature != nil {
		params.Temperature = openai.Float(*temperature)
	}
	if maxTokens != nil {
		params.MaxTokens = openai.Int(int64(*maxTokens))
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("llmclient: openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llmclient: openai completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
