package intermediary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/mas"
	"github.com/trinityguard/sentinel/tracelog"
)

func TestChatDelegatesToAdapter(t *testing.T) {
	fw := mas.NewFakeFramework([]string{"A"}, nil)
	im := New(mas.NewBaseAdapter(fw), tracelog.NewWriter())

	reply, err := im.Chat(context.Background(), "A", "hello", nil)
	require.NoError(t, err)
	require.Equal(t, "reply to: hello", reply)
}

func TestInjectToolMockDoesNotTouchAgentState(t *testing.T) {
	fw := mas.NewFakeFramework([]string{"A"}, nil)
	im := New(mas.NewBaseAdapter(fw), nil)

	result, err := im.InjectTool(context.Background(), "A", "http_get", map[string]any{"url": "x"}, true)
	require.NoError(t, err)
	require.Equal(t, true, result["mocked"])
}

func TestMonitoredRunnerProducesTrace(t *testing.T) {
	fw := mas.NewFakeFramework([]string{"A", "B"}, []event.Message{{From: "A", To: "B", Content: "hi"}})
	im := New(mas.NewBaseAdapter(fw), tracelog.NewWriter())

	r := im.MonitoredRunner(nil)
	result, err := r.Run(context.Background(), "task", mas.WorkflowOptions{})
	require.NoError(t, err)
	trace, ok := result.Metadata["trace"].(event.WorkflowTrace)
	require.True(t, ok)
	require.Len(t, trace.Messages, 1)
}
