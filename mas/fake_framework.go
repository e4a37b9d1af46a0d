package mas

import (
	"context"
	"fmt"
	"sync"

	"github.com/trinityguard/sentinel/event"
)

// FakeFramework is an in-memory Framework used by this package's own tests
// and as a starting point for wiring a real upstream framework. It drives a
// scripted exchange of messages between named agents, routing every
// outgoing message through whatever hook InterposeSend installed.
type FakeFramework struct {
	mu       sync.Mutex
	agents   []string
	roles    map[string]string
	script   []event.Message // messages to "send" in DriveWorkflow, in order
	hook     func(event.Message) (event.Message, error)
	explicit map[string][]string

	Delivered []event.Message // post-hook content actually "delivered"
}

// NewFakeFramework builds a framework with the given agent names and a
// scripted sequence of messages DriveWorkflow will replay.
func NewFakeFramework(agents []string, script []event.Message) *FakeFramework {
	roles := make(map[string]string, len(agents))
	for _, a := range agents {
		roles[a] = "participant"
	}
	return &FakeFramework{agents: agents, roles: roles, script: script}
}

// SetExplicitTopology configures ExplicitTopology to return a fixed map
// instead of falling through to the complete/chain derivation.
func (f *FakeFramework) SetExplicitTopology(topo map[string][]string) {
	f.explicit = topo
}

func (f *FakeFramework) AgentNames(ctx context.Context) ([]string, error) {
	return f.agents, nil
}

func (f *FakeFramework) AgentInfo(ctx context.Context, name string) (AgentInfo, error) {
	role, ok := f.roles[name]
	if !ok {
		return AgentInfo{}, fmt.Errorf("fake framework: unknown agent %q", name)
	}
	return AgentInfo{Name: name, Role: role}, nil
}

func (f *FakeFramework) Generate(ctx context.Context, agent, message string, history []event.Message) (string, error) {
	return "reply to: " + message, nil
}

func (f *FakeFramework) InterposeSend(h func(event.Message) (event.Message, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hook = h
}

func (f *FakeFramework) ExplicitTopology(ctx context.Context) (map[string][]string, bool) {
	if f.explicit == nil {
		return nil, false
	}
	return f.explicit, true
}

// DriveWorkflow replays the scripted messages through whatever hook is
// currently installed, recording the delivered (post-hook) messages.
func (f *FakeFramework) DriveWorkflow(ctx context.Context, task string, opts WorkflowOptions) (WorkflowResult, error) {
	f.mu.Lock()
	h := f.hook
	f.mu.Unlock()

	var logs []event.MessageLog
	for _, m := range f.script {
		out := m
		if h != nil {
			var err error
			out, err = h(m)
			if err != nil {
				return WorkflowResult{Success: false, Error: err.Error(), Messages: logs}, err
			}
		}
		f.Delivered = append(f.Delivered, out)
		logs = append(logs, event.NewMessageLog(out.From, out.To, out.Content, nil))
	}
	return WorkflowResult{Success: true, Output: "done", Messages: logs}, nil
}
