package llmclient

import (
	"context"
	"fmt"
	"sync"
)

// FakeBackend is a scripted Backend for tests: it returns successive
// entries from Responses, failing with Err after those are exhausted
// (or immediately, if FailFirst is set).
type FakeBackend struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	FailFirst int // number of leading calls that fail with Err before Responses are served

	calls int
}

func (b *FakeBackend) Complete(ctx context.Context, system, user string, temperature *float64, maxTokens *int) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	call := b.calls
	b.calls++

	if call < b.FailFirst {
		if b.Err != nil {
			return "", b.Err
		}
		return "", fmt.Errorf("llmclient: fake backend forced failure on call %d", call)
	}

	idx := call - b.FailFirst
	if idx >= len(b.Responses) {
		if b.Err != nil {
			return "", b.Err
		}
		return "", fmt.Errorf("llmclient: fake backend has no more scripted responses")
	}
	return b.Responses[idx], nil
}

// Calls reports how many times Complete has been invoked.
func (b *FakeBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
