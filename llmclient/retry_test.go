package llmclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/harnesserr"
)

func TestRetryingClientSucceedsAfterTransientFailures(t *testing.T) {
	backend := &FakeBackend{FailFirst: 2, Responses: []string{"ok"}}
	client := &RetryingClient{Backend: backend, RetryCount: 3, RetryDelay: time.Millisecond}

	out, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, 3, backend.Calls())
}

func TestRetryingClientRaisesLLMErrorAfterExhaustion(t *testing.T) {
	backend := &FakeBackend{FailFirst: 10}
	client := &RetryingClient{Backend: backend, RetryCount: 2, RetryDelay: time.Millisecond}

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)

	var herr *harnesserr.Error
	require.ErrorAs(t, err, &herr)
	require.Equal(t, harnesserr.KindLLMError, herr.Kind)
	require.Equal(t, 3, backend.Calls(), "initial attempt plus RetryCount retries")
}

func TestRetryingClientRespectsContextCancellation(t *testing.T) {
	backend := &FakeBackend{FailFirst: 10}
	client := &RetryingClient{Backend: backend, RetryCount: 5, RetryDelay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "prompt")
	require.Error(t, err)
}
