package llmclient

import (
	"context"
	"fmt"
	"time"

	"github.com/trinityguard/sentinel/harnesserr"
)

// RetryingClient wraps a Backend with a fixed-delay retry policy: on any
// backend error, retry up to RetryCount times with RetryDelay between
// attempts, then raise a typed LLMError.
type RetryingClient struct {
	Backend    Backend
	RetryCount int
	RetryDelay time.Duration
}

// NewRetryingClient builds a client from a MonitorConfig's retry fields.
func NewRetryingClient(backend Backend, cfg MonitorConfig) *RetryingClient {
	return &RetryingClient{Backend: backend, RetryCount: cfg.RetryCount, RetryDelay: cfg.RetryDelay}
}

func (c *RetryingClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.GenerateWithSystem(ctx, "", prompt, nil, nil)
}

func (c *RetryingClient) GenerateWithSystem(ctx context.Context, system, user string, temperature *float64, maxTokens *int) (string, error) {
	var lastErr error
	attempts := c.RetryCount
	if attempts < 0 {
		attempts = 0
	}

	for attempt := 0; attempt <= attempts; attempt++ {
		out, err := c.Backend.Complete(ctx, system, user, temperature, maxTokens)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return "", harnesserr.New("RetryingClient.GenerateWithSystem", harnesserr.KindLLMError, ctx.Err())
			case <-time.After(c.RetryDelay):
			}
		}
	}

	return "", harnesserr.New("RetryingClient.GenerateWithSystem", harnesserr.KindLLMError,
		fmt.Errorf("exhausted %d retries: %w", attempts, lastErr))
}
