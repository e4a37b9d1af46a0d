package mas

import (
	"context"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/hook"
)

// Adapter is the standard operation set every MAS integration exposes.
// The direct-manipulation primitives exist for tests: each accepts
// mock=true to return a shape-correct result without touching agent state,
// so a test gets a predictable response path without LLM expense.
type Adapter interface {
	Agents(ctx context.Context) ([]AgentInfo, error)
	Agent(ctx context.Context, name string) (AgentInfo, error)
	RunWorkflow(ctx context.Context, task string, opts WorkflowOptions) (WorkflowResult, error)
	Topology(ctx context.Context) (map[string][]string, error)
	RegisterHook(h hook.Hook)
	ClearHooks()

	Chat(ctx context.Context, agent, message string, history []event.Message) (string, error)
	SimulateMessage(ctx context.Context, from, to, message string) (event.Message, error)
	InjectTool(ctx context.Context, agent, tool string, params map[string]any, mock bool) (map[string]any, error)
	InjectMemory(ctx context.Context, agent, content string, kind MemoryKind, mock bool) error
	Broadcast(ctx context.Context, from string, to []string, message string, mock bool) ([]event.Message, error)
	SpoofIdentity(ctx context.Context, real, spoofed, to, message string, mock bool) (event.Message, error)
	ResourceUsage(ctx context.Context, agent string) (ResourceUsage, error)
}

// Framework is the minimal contract an upstream MAS framework must satisfy
// for a conforming BaseAdapter to wrap it. Frameworks lacking a way
// to interpose on message delivery cannot be integrated.
type Framework interface {
	AgentNames(ctx context.Context) ([]string, error)
	AgentInfo(ctx context.Context, name string) (AgentInfo, error)
	Generate(ctx context.Context, agent, message string, history []event.Message) (string, error)
	DriveWorkflow(ctx context.Context, task string, opts WorkflowOptions) (WorkflowResult, error)
	InterposeSend(h func(event.Message) (event.Message, error))
	// ExplicitTopology returns the framework's allowed-speaker transitions,
	// or (nil, false) if the framework does not expose one — the adapter
	// falls through to the complete/chain tie-break in that case.
	ExplicitTopology(ctx context.Context) (map[string][]string, bool)
}
