package tracelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/harnesserr"
)

func TestWriterLifecycle(t *testing.T) {
	w := NewWriter()

	_, err := w.BeginTrace("do the thing")
	require.NoError(t, err)

	require.NoError(t, w.AppendStep(event.AgentStepLog{AgentName: "A", StepType: event.StepReceive}))
	require.NoError(t, w.AppendMessage(event.NewMessageLog("A", "B", "hi", nil)))

	steps := w.CurrentSteps()
	require.Len(t, steps, 1)

	sealed, err := w.EndTrace(true, "")
	require.NoError(t, err)
	require.True(t, sealed.Success)
	require.Len(t, sealed.Messages, 1)
	require.NotNil(t, sealed.EndTime)
	require.False(t, sealed.EndTime.Before(sealed.StartTime))
}

func TestWriterBeginTraceAlreadyOpen(t *testing.T) {
	w := NewWriter()
	_, err := w.BeginTrace("first")
	require.NoError(t, err)

	_, err = w.BeginTrace("second")
	require.Error(t, err)
	require.ErrorIs(t, err, harnesserr.ErrTraceAlreadyOpen)
}

func TestWriterEndTraceNoActiveTrace(t *testing.T) {
	w := NewWriter()
	_, err := w.EndTrace(true, "")
	require.Error(t, err)
	require.ErrorIs(t, err, harnesserr.ErrNoActiveTrace)
}

func TestWriterAppendStepNoActiveTrace(t *testing.T) {
	w := NewWriter()
	err := w.AppendStep(event.AgentStepLog{})
	require.Error(t, err)
	require.ErrorIs(t, err, harnesserr.ErrNoActiveTrace)
}

func TestWriterCurrentStepsIsSnapshot(t *testing.T) {
	w := NewWriter()
	_, err := w.BeginTrace("t")
	require.NoError(t, err)
	require.NoError(t, w.AppendStep(event.AgentStepLog{AgentName: "A"}))

	snap := w.CurrentSteps()
	require.NoError(t, w.AppendStep(event.AgentStepLog{AgentName: "B"}))

	require.Len(t, snap, 1, "snapshot must not observe later appends")
}

func TestWriterDurationComputedAtEnd(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(5 * time.Second)

	calls := 0
	w := NewWriter(withClock(func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return end
	}))

	_, err := w.BeginTrace("t")
	require.NoError(t, err)
	sealed, err := w.EndTrace(true, "")
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, sealed.Duration())
}

func TestWriterCanReopenAfterEnd(t *testing.T) {
	w := NewWriter()
	_, err := w.BeginTrace("first")
	require.NoError(t, err)
	_, err = w.EndTrace(true, "")
	require.NoError(t, err)

	_, err = w.BeginTrace("second")
	require.NoError(t, err)
}
