package event

// RiskProfile is derived, not stored: it is computed on demand from a
// monitor's internal state (known vulnerabilities + alert count).
type RiskProfile struct {
	RiskLevel            Severity
	KnownVulnerabilities []TestCase
	AlertCount           int
	Recommendations      []string
}

// DeriveRiskProfile implements the shared severity-threshold rule every
// Monitor implementation uses, so thresholds never drift between plugins.
func DeriveRiskProfile(knownVulns []TestCase, alertCount int) RiskProfile {
	hasCritical := false
	hasHigh := false
	for _, v := range knownVulns {
		switch v.Severity {
		case SeverityCritical:
			hasCritical = true
		case SeverityHigh:
			hasHigh = true
		}
	}

	var level Severity
	var recs []string
	switch {
	case hasCritical || alertCount > 5:
		level = SeverityCritical
		recs = append(recs, "immediate review required: critical known vulnerability or alert volume exceeded")
	case hasHigh || alertCount > 2:
		level = SeverityHigh
		recs = append(recs, "elevated monitoring recommended: high-severity vulnerability or repeated alerts")
	case len(knownVulns) > 0:
		level = SeverityMedium
		recs = append(recs, "known vulnerabilities present: schedule remediation review")
	default:
		level = SeverityLow
		recs = append(recs, "no known vulnerabilities or elevated alert volume observed")
	}

	return RiskProfile{
		RiskLevel:            level,
		KnownVulnerabilities: knownVulns,
		AlertCount:           alertCount,
		Recommendations:      recs,
	}
}
