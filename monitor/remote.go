package monitor

import (
	"context"
	"fmt"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/rpcplugin"
)

// RemoteMonitor adapts an out-of-process monitor served over rpcplugin to
// the Monitor interface: Process marshals the step to a structpb.Struct,
// calls the remote plugin, and unmarshals an optional Alert back.
// Reset/Configure/SetTestContext/RiskProfile are tracked locally (a remote
// plugin is treated as stateless from the coordinator's point of view,
// matching the wire contract's single Process/Info method pair) while
// still accumulating a local RiskProfile view from what the remote Process
// calls return.
type RemoteMonitor struct {
	info   Info
	client rpcplugin.RemotePluginClient
	state  *state
}

// NewRemoteMonitor builds a RemoteMonitor for a plugin reachable via
// client, describing itself with info.
func NewRemoteMonitor(info Info, client rpcplugin.RemotePluginClient) *RemoteMonitor {
	return &RemoteMonitor{info: info, client: client, state: newState()}
}

func (m *RemoteMonitor) Info() Info { return m.info }

func (m *RemoteMonitor) Reset() { m.state.reset() }

func (m *RemoteMonitor) Configure(map[string]any) error { return nil }

func (m *RemoteMonitor) SetTestContext(result event.TestResult) { m.state.setTestContext(result) }

func (m *RemoteMonitor) RiskProfile() event.RiskProfile { return m.state.riskProfile() }

func (m *RemoteMonitor) Process(ctx context.Context, step event.AgentStepLog) (*event.Alert, error) {
	req, err := rpcplugin.ToStruct(map[string]any{
		"agent_name": step.AgentName,
		"step_type":  string(step.StepType),
		"content":    fmt.Sprint(step.Content),
		"metadata":   step.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("monitor: encoding remote process request: %w", err)
	}

	resp, err := m.client.Process(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("monitor: remote process call to %q: %w", m.info.Name, err)
	}

	asMap := resp.AsMap()
	if len(asMap) == 0 {
		return nil, nil
	}

	var alert event.Alert
	if err := rpcplugin.FromStruct(resp, &alert); err != nil {
		return nil, fmt.Errorf("monitor: decoding remote alert: %w", err)
	}
	if alert.RiskType == "" && alert.Message == "" {
		return nil, nil
	}
	m.state.recordAlert(alert)
	return &alert, nil
}
