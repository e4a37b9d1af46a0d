package event

import (
	"encoding/json"
	"time"
)

// WorkflowTrace is a bounded record of one workflow execution: the steps and
// messages observed plus its outcome. A trace is created by beginTrace,
// appended to during execution, and sealed exactly once by endTrace.
type WorkflowTrace struct {
	Task       string
	StartTime  time.Time
	EndTime    *time.Time
	AgentSteps []AgentStepLog
	Messages   []MessageLog
	Success    bool
	Error      string
}

// Duration returns EndTime - StartTime. It is not stored on the trace; it is
// always derived, including when the trace is serialized.
func (t WorkflowTrace) Duration() time.Duration {
	if t.EndTime == nil {
		return 0
	}
	return t.EndTime.Sub(t.StartTime)
}

// Open reports whether the trace has not yet been sealed by endTrace.
func (t WorkflowTrace) Open() bool {
	return t.EndTime == nil
}

// MarshalJSON adds the derived DurationSeconds alongside the trace's
// stored fields, so a serialized trace (e.g. a tracelog.Sink record)
// always carries the duration per §4.3 rather than requiring the reader
// to recompute it from StartTime/EndTime.
func (t WorkflowTrace) MarshalJSON() ([]byte, error) {
	type alias WorkflowTrace
	return json.Marshal(struct {
		alias
		DurationSeconds float64 `json:"duration_seconds"`
	}{
		alias:           alias(t),
		DurationSeconds: t.Duration().Seconds(),
	})
}
