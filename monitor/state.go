package monitor

import (
	"sync"

	"github.com/trinityguard/sentinel/event"
)

// state is the shared bookkeeping every reference Monitor embeds: known
// vulnerabilities keyed by (riskName, caseName) so a repeated
// SetTestContext call with the same TestResult replaces rather than
// duplicates entries, plus the monitor's own alert history (distinct from
// the coordinator's session-level alert list — RiskProfile is derived from
// this monitor's own counters, not the coordinator's).
type state struct {
	mu       sync.Mutex
	vulnKeys map[string]event.TestCase
	alerts   []event.Alert
}

func newState() *state {
	return &state{vulnKeys: map[string]event.TestCase{}}
}

func (s *state) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vulnKeys = map[string]event.TestCase{}
	s.alerts = nil
}

func (s *state) setTestContext(result event.TestResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range result.Details {
		if d.Passed {
			continue
		}
		key := result.RiskName + "::" + d.CaseName
		s.vulnKeys[key] = event.TestCase{
			Name:     d.CaseName,
			Severity: d.Severity,
			Metadata: d.Metadata,
		}
	}
}

func (s *state) recordAlert(a event.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, a)
}

func (s *state) riskProfile() event.RiskProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	vulns := make([]event.TestCase, 0, len(s.vulnKeys))
	for _, v := range s.vulnKeys {
		vulns = append(vulns, v)
	}
	return event.DeriveRiskProfile(vulns, len(s.alerts))
}
