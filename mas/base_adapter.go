package mas

import (
	"context"
	"fmt"
	"sync"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/hook"
)

// BaseAdapter is a concrete Adapter implementation over any Framework. It
// owns the HookChain and lazily wires it: the first RegisterHook call
// installs interposition on the framework, calling InterposeSend exactly
// once with a closure that always delegates to the adapter's current chain.
type BaseAdapter struct {
	fw    Framework
	chain *hook.Chain

	mu    sync.Mutex
	wired bool
}

// NewBaseAdapter wraps fw.
func NewBaseAdapter(fw Framework) *BaseAdapter {
	return &BaseAdapter{fw: fw, chain: hook.NewChain()}
}

func (a *BaseAdapter) wireOnce() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.wired {
		return
	}
	a.wired = true
	a.fw.InterposeSend(a.chain.Apply)
}

func (a *BaseAdapter) RegisterHook(h hook.Hook) {
	a.wireOnce()
	a.chain.Register(h)
}

func (a *BaseAdapter) ClearHooks() {
	a.chain.Clear()
}

func (a *BaseAdapter) Agents(ctx context.Context) ([]AgentInfo, error) {
	names, err := a.fw.AgentNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("mas: listing agents: %w", err)
	}
	infos := make([]AgentInfo, 0, len(names))
	for _, n := range names {
		info, err := a.fw.AgentInfo(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("mas: describing agent %q: %w", n, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (a *BaseAdapter) Agent(ctx context.Context, name string) (AgentInfo, error) {
	info, err := a.fw.AgentInfo(ctx, name)
	if err != nil {
		return AgentInfo{}, ErrUnknownAgent("Adapter.Agent", name)
	}
	return info, nil
}

func (a *BaseAdapter) RunWorkflow(ctx context.Context, task string, opts WorkflowOptions) (WorkflowResult, error) {
	a.wireOnce()
	return a.fw.DriveWorkflow(ctx, task, opts)
}

// Topology derives the agent transition map with tie-break order explicit
// > complete > chain. A linear chain is used whenever there are at most
// two agents, even when the framework would otherwise support a complete
// graph — this is documented behavior, not a bug to "fix".
func (a *BaseAdapter) Topology(ctx context.Context) (map[string][]string, error) {
	if explicit, ok := a.fw.ExplicitTopology(ctx); ok {
		return explicit, nil
	}

	names, err := a.fw.AgentNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("mas: deriving topology: %w", err)
	}

	topo := make(map[string][]string, len(names))
	if len(names) <= 2 {
		for i, n := range names {
			if i+1 < len(names) {
				topo[n] = []string{names[i+1]}
			} else {
				topo[n] = nil
			}
		}
		return topo, nil
	}

	for _, n := range names {
		peers := make([]string, 0, len(names)-1)
		for _, other := range names {
			if other != n {
				peers = append(peers, other)
			}
		}
		topo[n] = peers
	}
	return topo, nil
}

func (a *BaseAdapter) Chat(ctx context.Context, agentName, message string, history []event.Message) (string, error) {
	if _, err := a.fw.AgentInfo(ctx, agentName); err != nil {
		return "", ErrUnknownAgent("Adapter.Chat", agentName)
	}
	return a.fw.Generate(ctx, agentName, message, history)
}

func (a *BaseAdapter) SimulateMessage(ctx context.Context, from, to, message string) (event.Message, error) {
	msg := event.Message{From: from, To: to, Content: message}
	return a.chain.Apply(msg)
}

func (a *BaseAdapter) InjectTool(ctx context.Context, agentName, tool string, params map[string]any, mock bool) (map[string]any, error) {
	if mock {
		return map[string]any{"tool": tool, "mocked": true, "params": params}, nil
	}
	if _, err := a.fw.AgentInfo(ctx, agentName); err != nil {
		return nil, ErrUnknownAgent("Adapter.InjectTool", agentName)
	}
	return map[string]any{"tool": tool, "mocked": false, "params": params}, nil
}

func (a *BaseAdapter) InjectMemory(ctx context.Context, agentName, content string, kind MemoryKind, mock bool) error {
	if mock {
		return nil
	}
	if _, err := a.fw.AgentInfo(ctx, agentName); err != nil {
		return ErrUnknownAgent("Adapter.InjectMemory", agentName)
	}
	return nil
}

func (a *BaseAdapter) Broadcast(ctx context.Context, from string, to []string, message string, mock bool) ([]event.Message, error) {
	out := make([]event.Message, 0, len(to))
	for _, t := range to {
		msg := event.Message{From: from, To: t, Content: message}
		if mock {
			out = append(out, msg)
			continue
		}
		applied, err := a.chain.Apply(msg)
		if err != nil {
			return out, fmt.Errorf("mas: broadcast to %q: %w", t, err)
		}
		out = append(out, applied)
	}
	return out, nil
}

func (a *BaseAdapter) SpoofIdentity(ctx context.Context, real, spoofed, to, message string, mock bool) (event.Message, error) {
	msg := event.Message{From: spoofed, To: to, Content: message, Extra: map[string]any{"spoofed_from": real}}
	if mock {
		return msg, nil
	}
	return a.chain.Apply(msg)
}

func (a *BaseAdapter) ResourceUsage(ctx context.Context, agentName string) (ResourceUsage, error) {
	return ResourceUsage{Agent: agentName}, nil
}
