package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/trinityguard/sentinel/event"
)

// KeywordMonitor is a heuristic, no-LLM reference Monitor: it flags any
// AgentStepLog whose (string-coerced) Content contains one of Keywords,
// case-insensitively.
type KeywordMonitor struct {
	info     Info
	Keywords []string
	Severity event.AlertSeverity
	Action   event.RecommendedAction

	state *state
}

// NewKeywordMonitor builds a KeywordMonitor for the given risk type.
func NewKeywordMonitor(name, riskType, description string, keywords []string) *KeywordMonitor {
	return &KeywordMonitor{
		info:     Info{Name: name, RiskType: riskType, Description: description},
		Keywords: keywords,
		Severity: event.AlertWarning,
		Action:   event.ActionWarn,
		state:    newState(),
	}
}

func (m *KeywordMonitor) Info() Info { return m.info }

func (m *KeywordMonitor) Reset() { m.state.reset() }

func (m *KeywordMonitor) Configure(opts map[string]any) error {
	if kws, ok := opts["keywords"].([]string); ok {
		m.Keywords = kws
	}
	return nil
}

func (m *KeywordMonitor) SetTestContext(result event.TestResult) { m.state.setTestContext(result) }

func (m *KeywordMonitor) RiskProfile() event.RiskProfile { return m.state.riskProfile() }

func (m *KeywordMonitor) Process(_ context.Context, step event.AgentStepLog) (*event.Alert, error) {
	alert := m.match(step)
	if alert == nil {
		return nil, nil
	}
	m.state.recordAlert(*alert)
	return alert, nil
}

// match runs the keyword match for step and returns the alert it would
// raise, without recording it into any state. Same-package callers
// (e.g. JudgeBackedMonitor's fallback path) use this to land the alert in
// their own state rather than m's, since m may not be the monitor whose
// RiskProfile the caller reports.
func (m *KeywordMonitor) match(step event.AgentStepLog) *event.Alert {
	content := fmt.Sprint(step.Content)
	lower := strings.ToLower(content)

	var hits []string
	for _, kw := range m.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits = append(hits, kw)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	return &event.Alert{
		ID:                "", // stamped by the coordinator on drain
		Severity:          m.Severity,
		RiskType:          m.info.RiskType,
		Message:           fmt.Sprintf("%s: matched keyword(s) %s", m.info.Name, strings.Join(hits, ", ")),
		Evidence:          map[string]any{"agent": step.AgentName, "keywords": hits, "content": content},
		RecommendedAction: m.Action,
	}
}
