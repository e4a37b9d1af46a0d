package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/event"
)

func TestKeywordMonitorProcess(t *testing.T) {
	m := NewKeywordMonitor("keyword-pii", "pii-leak", "flags PII-like keywords", []string{"ssn", "password"})

	alert, err := m.Process(context.Background(), event.AgentStepLog{AgentName: "A", Content: "here is my SSN: 123-45-6789"})
	require.NoError(t, err)
	require.NotNil(t, alert)
	require.Equal(t, "pii-leak", alert.RiskType)

	alert, err = m.Process(context.Background(), event.AgentStepLog{AgentName: "A", Content: "nothing interesting here"})
	require.NoError(t, err)
	require.Nil(t, alert)
}

func TestKeywordMonitorResetClearsAlertHistory(t *testing.T) {
	m := NewKeywordMonitor("keyword-pii", "pii-leak", "", []string{"ssn"})
	_, err := m.Process(context.Background(), event.AgentStepLog{Content: "ssn leak"})
	require.NoError(t, err)
	require.Equal(t, 1, len(m.state.alerts))

	m.Reset()
	require.Equal(t, 0, len(m.state.alerts))
	require.Equal(t, event.SeverityLow, m.RiskProfile().RiskLevel)
}

// fakeJudge scripts a sequence of JudgeResults/errors, one per call, to
// exercise a monitor's fallback path deterministically (Scenario 4).
type fakeJudge struct {
	results []*event.JudgeResult
	calls   int
}

func (j *fakeJudge) Analyze(context.Context, string, map[string]string) (*event.JudgeResult, error) {
	i := j.calls
	j.calls++
	if i >= len(j.results) {
		return nil, errors.New("fakeJudge: no more scripted results")
	}
	return j.results[i], nil
}

func TestJudgeBackedMonitorFallsBackOnAbsent(t *testing.T) {
	fj := &fakeJudge{results: []*event.JudgeResult{
		{HasRisk: true, Severity: event.JudgeWarning, Reason: "judge said so"},
		nil, // absent: second event must consult the fallback
		{HasRisk: false, Severity: event.JudgeNone},
	}}
	fallback := NewKeywordMonitor("fallback", "risk", "", []string{"danger"})
	m := NewJudgeBackedMonitor("judge-backed", "risk", "", fj, fallback)

	a1, err := m.Process(context.Background(), event.AgentStepLog{Content: "event one"})
	require.NoError(t, err)
	require.NotNil(t, a1)
	require.Equal(t, "judge said so", a1.Message)

	a2, err := m.Process(context.Background(), event.AgentStepLog{Content: "this has danger in it"})
	require.NoError(t, err)
	require.NotNil(t, a2) // fallback matched "danger"

	a3, err := m.Process(context.Background(), event.AgentStepLog{Content: "event three"})
	require.NoError(t, err)
	require.Nil(t, a3)

	// Both the judge-raised alert and the fallback-raised alert must land in
	// this monitor's own state, not the fallback KeywordMonitor's.
	require.Equal(t, 2, m.RiskProfile().AlertCount)
	require.Equal(t, 0, fallback.RiskProfile().AlertCount)
}

func TestSetTestContextIsIdempotent(t *testing.T) {
	m := NewKeywordMonitor("k", "risk", "", nil)
	result := event.TestResult{
		RiskName: "prompt-injection",
		Details: []event.CaseResult{
			{CaseName: "case-1", Passed: false, Severity: event.SeverityHigh},
			{CaseName: "case-2", Passed: true, Severity: event.SeverityLow},
		},
	}

	m.SetTestContext(result)
	m.SetTestContext(result)

	profile := m.RiskProfile()
	require.Len(t, profile.KnownVulnerabilities, 1)
	require.Equal(t, event.SeverityHigh, profile.RiskLevel)
}
