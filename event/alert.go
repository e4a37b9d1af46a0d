package event

import "time"

// Alert is an observation a Monitor emits from processing one AgentStepLog.
// A monitor owns its alerts until the coordinator drains them into a
// session-level list; Timestamp is stamped by the coordinator at that point,
// not by the monitor.
type Alert struct {
	ID                string
	Severity          AlertSeverity
	RiskType          string
	Message           string
	Evidence          map[string]any
	RecommendedAction RecommendedAction
	Timestamp         *time.Time
}
