// Package hook implements the message hook chain: an ordered,
// concurrency-safe sequence of Message -> Message filters, plus
// MessageInterception matching and application for the Intercepting
// runners.
package hook

import (
	"sync/atomic"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/harnesserr"
)

// Hook is one link in a chain. It returns the (possibly rewritten) message,
// or an error to abort the whole chain.
type Hook func(event.Message) (event.Message, error)

// Chain is an ordered, mutating filter over messages. Registration order
// defines application order; there is no priority system. Readers (Apply)
// may run concurrently with writers (Register/Clear): the chain holds its
// hooks behind an atomic pointer to a slice, so Apply always sees a stable
// snapshot taken at call time (copy-on-write).
type Chain struct {
	hooks atomic.Pointer[[]Hook]
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	c := &Chain{}
	empty := []Hook{}
	c.hooks.Store(&empty)
	return c
}

// Register appends hook to the chain. The first registration and every
// subsequent one simply append to a new slice that readers see atomically;
// whether this is also the call that "wires" interception onto an adapter's
// agents is the adapter's concern, not the chain's.
func (c *Chain) Register(h Hook) {
	for {
		old := c.hooks.Load()
		next := make([]Hook, len(*old)+1)
		copy(next, *old)
		next[len(*old)] = h
		if c.hooks.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Clear empties the chain. This does not "un-wire" anything at the adapter
// level — it only means the next Apply folds over zero hooks, which is a
// no-op and therefore zero cost.
func (c *Chain) Clear() {
	empty := []Hook{}
	c.hooks.Store(&empty)
}

// Len reports how many hooks are currently registered.
func (c *Chain) Len() int {
	return len(*c.hooks.Load())
}

// Apply folds m through every hook in registration order, using a single
// snapshot of the chain taken at the start of the call. A hook that returns
// an error aborts the fold immediately: the entire chain is considered to
// have failed, and any mutation produced by hooks before the failing one is
// discarded — the caller receives the original m back alongside the error.
func (c *Chain) Apply(m event.Message) (event.Message, error) {
	snapshot := *c.hooks.Load()
	cur := m
	for _, h := range snapshot {
		next, err := h(cur)
		if err != nil {
			return m, harnesserr.New("Chain.Apply", harnesserr.KindHookFailure, err)
		}
		cur = next
	}
	return cur, nil
}
