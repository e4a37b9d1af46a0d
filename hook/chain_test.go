package hook

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/event"
)

func TestChainApplyOrder(t *testing.T) {
	c := NewChain()
	c.Register(func(m event.Message) (event.Message, error) {
		return m.WithContent(m.Content + "-1"), nil
	})
	c.Register(func(m event.Message) (event.Message, error) {
		return m.WithContent(m.Content + "-2"), nil
	})

	out, err := c.Apply(event.Message{Content: "x"})
	require.NoError(t, err)
	require.Equal(t, "x-1-2", out.Content)
}

func TestChainApplyEmptyIsIdentity(t *testing.T) {
	c := NewChain()
	in := event.Message{From: "a", To: "b", Content: "unchanged"}
	out, err := c.Apply(in)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestChainApplyAbortsOnFailure(t *testing.T) {
	c := NewChain()
	boom := errors.New("boom")
	c.Register(func(m event.Message) (event.Message, error) {
		return m.WithContent("should not survive"), nil
	})
	c.Register(func(m event.Message) (event.Message, error) {
		return event.Message{}, boom
	})
	c.Register(func(m event.Message) (event.Message, error) {
		t.Fatal("hook after failing hook must not run")
		return m, nil
	})

	in := event.Message{Content: "original"}
	out, err := c.Apply(in)
	require.Error(t, err)
	require.True(t, errors.Is(err, boom))
	require.Equal(t, in, out, "partial mutation must be discarded on failure")
}

func TestChainClearDoesNotUnwire(t *testing.T) {
	c := NewChain()
	c.Register(func(m event.Message) (event.Message, error) { return m, nil })
	require.Equal(t, 1, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())

	out, err := c.Apply(event.Message{Content: "still works"})
	require.NoError(t, err)
	require.Equal(t, "still works", out.Content)
}

func TestChainConcurrentRegisterAndApply(t *testing.T) {
	c := NewChain()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Register(func(m event.Message) (event.Message, error) { return m, nil })
		}()
		go func() {
			defer wg.Done()
			_, _ = c.Apply(event.Message{Content: "x"})
		}()
	}
	wg.Wait()
}
