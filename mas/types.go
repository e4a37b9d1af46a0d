package mas

import "github.com/trinityguard/sentinel/event"

// AgentInfo describes one agent known to the adapter.
type AgentInfo struct {
	Name         string
	Role         string
	SystemPrompt string
	Tools        []string
}

// WorkflowOptions configures one runWorkflow call.
type WorkflowOptions struct {
	MaxRounds int
	Metadata  map[string]any
}

// WorkflowResult is the outcome of driving one workflow to completion.
type WorkflowResult struct {
	Success  bool
	Output   string
	Messages []event.MessageLog
	Metadata map[string]any
	Error    string
}

// ResourceUsage reports token/call counters for one agent, or the whole MAS
// when Agent is empty.
type ResourceUsage struct {
	Agent       string
	PromptTokens int
	CompletionTokens int
	ToolCalls   int
}

// MemoryKind distinguishes where InjectMemory writes.
type MemoryKind string

const (
	MemoryContext MemoryKind = "context"
	MemorySystem  MemoryKind = "system"
)
