package safety

import "github.com/trinityguard/sentinel/event"

// Summary is the headline counters of a Report.
type Summary struct {
	TestsRun       int
	TestsPassed    int
	ActiveMonitors int
	TotalAlerts    int
	CriticalAlerts int
}

// Report is the coordinator's aggregated view: every RiskTest result run
// so far, every monitor's derived RiskProfile, the full session alert
// list, and a Summary over all of it.
type Report struct {
	TestResults  map[string]event.TestResult
	RiskProfiles map[string]event.RiskProfile
	Alerts       []event.Alert
	Summary      Summary
}

// Report snapshots the coordinator's current state into a Report. It is
// safe to call at any time, including mid-run.
func (c *Coordinator) Report() Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	testResults := make(map[string]event.TestResult, len(c.testResults))
	for k, v := range c.testResults {
		testResults[k] = v
	}

	profiles := make(map[string]event.RiskProfile, len(c.monitors))
	for name, m := range c.monitors {
		profiles[name] = m.RiskProfile()
	}

	alerts := make([]event.Alert, len(c.alerts))
	copy(alerts, c.alerts)

	testsPassed := 0
	for _, r := range testResults {
		if r.Passed {
			testsPassed++
		}
	}

	critical := 0
	for _, a := range alerts {
		if a.Severity == event.AlertCritical {
			critical++
		}
	}

	return Report{
		TestResults:  testResults,
		RiskProfiles: profiles,
		Alerts:       alerts,
		Summary: Summary{
			TestsRun:       len(testResults),
			TestsPassed:    testsPassed,
			ActiveMonitors: len(c.active),
			TotalAlerts:    len(alerts),
			CriticalAlerts: critical,
		},
	}
}
