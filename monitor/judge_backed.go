package monitor

import (
	"context"
	"fmt"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/judge"
)

// JudgeBackedMonitor delegates Process to an LLM judge, falling back to a
// keyword rule whenever the judge returns absent (nil, nil) — an LLM
// failure or an unparseable response, per judge.Judge's documented
// tri-state contract. The fallback path is consulted only for the specific
// steps where the judge could not decide; other steps use the judge's
// verdict directly.
type JudgeBackedMonitor struct {
	info     Info
	judgeImpl judge.Judge
	Fallback *KeywordMonitor

	state *state
}

// NewJudgeBackedMonitor builds a monitor that analyzes step content with j,
// falling back to fallback whenever j.Analyze returns absent. fallback may
// be nil, in which case an absent judge verdict simply yields no alert.
func NewJudgeBackedMonitor(name, riskType, description string, j judge.Judge, fallback *KeywordMonitor) *JudgeBackedMonitor {
	return &JudgeBackedMonitor{
		info:      Info{Name: name, RiskType: riskType, Description: description},
		judgeImpl: j,
		Fallback:  fallback,
		state:     newState(),
	}
}

func (m *JudgeBackedMonitor) Info() Info { return m.info }

func (m *JudgeBackedMonitor) Judge() judge.Judge { return m.judgeImpl }

func (m *JudgeBackedMonitor) Reset() {
	m.state.reset()
	if m.Fallback != nil {
		m.Fallback.Reset()
	}
}

func (m *JudgeBackedMonitor) Configure(opts map[string]any) error {
	if m.Fallback != nil {
		return m.Fallback.Configure(opts)
	}
	return nil
}

func (m *JudgeBackedMonitor) SetTestContext(result event.TestResult) { m.state.setTestContext(result) }

func (m *JudgeBackedMonitor) RiskProfile() event.RiskProfile { return m.state.riskProfile() }

func (m *JudgeBackedMonitor) Process(ctx context.Context, step event.AgentStepLog) (*event.Alert, error) {
	content := fmt.Sprint(step.Content)

	result, err := m.judgeImpl.Analyze(ctx, content, map[string]string{"agent": step.AgentName, "step_type": string(step.StepType)})
	if err != nil {
		return nil, err
	}

	if result == nil {
		// Absent: the judge could not decide. Fall back exactly once per call.
		if m.Fallback == nil {
			return nil, nil
		}
		// Match against the fallback's keyword rule, but record the alert
		// into this monitor's own state rather than the fallback's — the
		// fallback is a detection strategy, not an independently reported
		// monitor, so its hits must count toward m.RiskProfile().AlertCount.
		alert := m.Fallback.match(step)
		if alert == nil {
			return nil, nil
		}
		m.state.recordAlert(*alert)
		return alert, nil
	}

	if !result.HasRisk {
		return nil, nil
	}

	alert := event.Alert{
		Severity:          judgeToAlertSeverity(result.Severity),
		RiskType:          m.info.RiskType,
		Message:           result.Reason,
		Evidence:          map[string]any{"agent": step.AgentName, "evidence": result.Evidence, "judge_type": result.JudgeType},
		RecommendedAction: result.RecommendedAction,
	}
	m.state.recordAlert(alert)
	return &alert, nil
}

// judgeToAlertSeverity maps the wider JudgeSeverity enum (which includes
// "none") onto AlertSeverity. A judge reporting HasRisk=true should never
// carry JudgeNone, but a "none" is mapped to info rather than dropped, so a
// misbehaving judge implementation cannot silently suppress an alert it
// otherwise decided to raise.
func judgeToAlertSeverity(s event.JudgeSeverity) event.AlertSeverity {
	switch s {
	case event.JudgeCritical:
		return event.AlertCritical
	case event.JudgeWarning:
		return event.AlertWarning
	default:
		return event.AlertInfo
	}
}
