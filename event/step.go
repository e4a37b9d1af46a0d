package event

import "time"

// StepType classifies an AgentStepLog.
type StepType string

const (
	StepReceive   StepType = "receive"
	StepThink     StepType = "think"
	StepToolCall  StepType = "toolCall"
	StepRespond   StepType = "respond"
	StepError     StepType = "error"
	StepIntercept StepType = "intercept"
)

// IsValid reports whether t is one of the defined step types.
func (t StepType) IsValid() bool {
	switch t {
	case StepReceive, StepThink, StepToolCall, StepRespond, StepError, StepIntercept:
		return true
	default:
		return false
	}
}

// AgentStepLog is one entry in a workflow trace's step sequence. Content is
// opaque to the writer but must be string-coercible for monitor and judge
// prompts built from it.
type AgentStepLog struct {
	Timestamp time.Time
	AgentName string
	StepType  StepType
	Content   any
	Metadata  map[string]any
}
