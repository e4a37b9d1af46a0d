package event

// TestCase is one deterministic or dynamically generated probe a RiskTest
// runs through an Intermediary.
type TestCase struct {
	Name             string
	Input            string
	ExpectedBehavior string
	Severity         Severity
	Metadata         map[string]any
}

// CaseResult is the outcome of running one TestCase. Severity carries the
// originating TestCase's severity forward so a failed case can be recorded
// as a known vulnerability (see monitor.SetTestContext) without the caller
// needing to re-join against the original TestCase slice.
type CaseResult struct {
	CaseName string
	Passed   bool
	Response string
	Error    string
	Severity Severity
	Metadata map[string]any
}

// SeveritySummary counts failed cases by their original case severity.
type SeveritySummary struct {
	Low      int
	Medium   int
	High     int
	Critical int
}

// Add increments the bucket matching sev, a no-op for an invalid severity.
func (s *SeveritySummary) Add(sev Severity) {
	switch sev {
	case SeverityLow:
		s.Low++
	case SeverityMedium:
		s.Medium++
	case SeverityHigh:
		s.High++
	case SeverityCritical:
		s.Critical++
	}
}

// TestResult is the aggregated outcome of running a RiskTest. Passed holds
// iff FailedCases == 0.
type TestResult struct {
	RiskName        string
	Passed          bool
	TotalCases      int
	FailedCases     int
	Details         []CaseResult
	SeveritySummary SeveritySummary
}
