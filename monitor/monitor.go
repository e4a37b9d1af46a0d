// Package monitor implements the Monitor plugin contract: a stateful
// consumer of the trace event stream that may emit an Alert per step, and
// that accumulates known vulnerabilities from pre-deployment test results
// into a derived RiskProfile.
package monitor

import (
	"context"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/judge"
)

// Info describes a Monitor for registry listings and reports.
type Info struct {
	Name        string
	RiskType    string
	Description string
}

// Monitor is a stateful event-consumer: Process is pure with respect to
// other monitors (the coordinator guarantees sequential Process calls into
// a given monitor) but may mutate the monitor's own internal state.
// Implementations are expected to emit at most one Alert per Process call;
// a monitor that would emit more must choose the most severe.
type Monitor interface {
	Info() Info
	Process(ctx context.Context, step event.AgentStepLog) (*event.Alert, error)
	// Reset clears all internal state, including known vulnerabilities and
	// alert history. It must be called exactly once before the first
	// Process call of a monitoring session.
	Reset()
	Configure(opts map[string]any) error
	// SetTestContext records result's failed cases as known vulnerabilities.
	// Calling it twice with the same TestResult must not double-count: a
	// vulnerability is keyed by (RiskName, CaseName) and a repeat call
	// simply replaces the existing entry.
	SetTestContext(result event.TestResult)
	RiskProfile() event.RiskProfile
}

// JudgeProvider is implemented by monitors that delegate content analysis
// to a judge.Judge, so risktest.EvaluateWithMonitor can reuse that same
// judge for secondary evaluation instead of re-deriving one.
type JudgeProvider interface {
	Judge() judge.Judge
}
