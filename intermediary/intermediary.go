// Package intermediary implements the L2 facade that sits between the
// safety coordinator and a mas.Adapter: the pre-deployment direct-
// manipulation test primitives (Chat, SimulateMessage, InjectTool,
// InjectMemory, Broadcast, SpoofIdentity, ResourceUsage), passed straight
// through to the adapter, plus a factory for the four runner.Runner
// variants so a RiskTest or the safety coordinator never has to construct
// one by hand.
package intermediary

import (
	"context"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/mas"
	"github.com/trinityguard/sentinel/runner"
	"github.com/trinityguard/sentinel/tracelog"
)

// Intermediary wraps one mas.Adapter with the scaffolding risk tests and
// the coordinator need: direct-manipulation primitives for controlled
// message testing, and runner construction for monitored/intercepted
// execution.
type Intermediary struct {
	Adapter mas.Adapter
	Writer  *tracelog.Writer
}

// New builds an Intermediary over adapter. writer may be nil; it is only
// required by MonitoredRunner/MonitoredInterceptingRunner and RunWorkflow.
func New(adapter mas.Adapter, writer *tracelog.Writer) *Intermediary {
	return &Intermediary{Adapter: adapter, Writer: writer}
}

// Agents lists the agents known to the wrapped adapter.
func (im *Intermediary) Agents(ctx context.Context) ([]mas.AgentInfo, error) {
	return im.Adapter.Agents(ctx)
}

// Topology returns the adapter's derived agent transition map.
func (im *Intermediary) Topology(ctx context.Context) (map[string][]string, error) {
	return im.Adapter.Topology(ctx)
}

// Chat drives agent directly with message and history, bypassing workflow
// execution — the primitive risk tests use to probe single-turn behavior.
func (im *Intermediary) Chat(ctx context.Context, agentName, message string, history []event.Message) (string, error) {
	return im.Adapter.Chat(ctx, agentName, message, history)
}

// SimulateMessage routes a synthetic message from -> to through the
// currently registered hook chain without driving a real workflow turn.
func (im *Intermediary) SimulateMessage(ctx context.Context, from, to, message string) (event.Message, error) {
	return im.Adapter.SimulateMessage(ctx, from, to, message)
}

// InjectTool simulates (or, with mock=false, attempts) invoking tool on
// agent with params.
func (im *Intermediary) InjectTool(ctx context.Context, agentName, tool string, params map[string]any, mock bool) (map[string]any, error) {
	return im.Adapter.InjectTool(ctx, agentName, tool, params, mock)
}

// InjectMemory writes content into agent's context or system memory.
func (im *Intermediary) InjectMemory(ctx context.Context, agentName, content string, kind mas.MemoryKind, mock bool) error {
	return im.Adapter.InjectMemory(ctx, agentName, content, kind, mock)
}

// Broadcast fans message out from from to every agent in to.
func (im *Intermediary) Broadcast(ctx context.Context, from string, to []string, message string, mock bool) ([]event.Message, error) {
	return im.Adapter.Broadcast(ctx, from, to, message, mock)
}

// SpoofIdentity sends message to the to agent with From rewritten to
// spoofed, recording real in Extra["spoofed_from"] for downstream analysis.
func (im *Intermediary) SpoofIdentity(ctx context.Context, real, spoofed, to, message string, mock bool) (event.Message, error) {
	return im.Adapter.SpoofIdentity(ctx, real, spoofed, to, message, mock)
}

// ResourceUsage reports token/call counters for agent, or the whole MAS
// when agent is empty.
func (im *Intermediary) ResourceUsage(ctx context.Context, agentName string) (mas.ResourceUsage, error) {
	return im.Adapter.ResourceUsage(ctx, agentName)
}

// BasicRunner builds a runner.Runner with no interception or logging.
func (im *Intermediary) BasicRunner() runner.Runner {
	return &runner.Basic{Adapter: im.Adapter}
}

// InterceptingRunner builds a runner.Runner applying interceptions to
// every message for the duration of one run.
func (im *Intermediary) InterceptingRunner(interceptions []event.MessageInterception) runner.Runner {
	return &runner.Intercepting{Adapter: im.Adapter, Interceptions: interceptions}
}

// MonitoredRunner builds a runner.Runner that logs every message/step to
// im.Writer and invokes callback synchronously as each step is appended.
func (im *Intermediary) MonitoredRunner(callback runner.StreamCallback) runner.Runner {
	return &runner.Monitored{Adapter: im.Adapter, Writer: im.Writer, Callback: callback}
}

// MonitoredInterceptingRunner composes interception and monitored logging:
// the log records the modified content, and an additional intercept step
// is recorded per applied interception.
func (im *Intermediary) MonitoredInterceptingRunner(interceptions []event.MessageInterception, callback runner.StreamCallback) runner.Runner {
	return &runner.MonitoredIntercepting{Adapter: im.Adapter, Writer: im.Writer, Interceptions: interceptions, Callback: callback}
}

// RunWorkflow drives task through a Basic runner — the primitive a RiskTest
// uses when it needs a full multi-turn workflow rather than a single Chat
// call, without attaching monitoring overhead the test itself doesn't need.
func (im *Intermediary) RunWorkflow(ctx context.Context, task string, opts mas.WorkflowOptions) (mas.WorkflowResult, error) {
	return im.BasicRunner().Run(ctx, task, opts)
}
