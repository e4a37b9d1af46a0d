package event

// Severity grades a test case or a known vulnerability. Weight ordering is
// low < medium < high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityWeight = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// IsValid reports whether s is one of the defined severities.
func (s Severity) IsValid() bool {
	_, ok := severityWeight[s]
	return ok
}

// Weight returns an ordinal for s, 0 for an invalid severity.
func (s Severity) Weight() int {
	return severityWeight[s]
}

// AlertSeverity grades an Alert, a distinct (and coarser) enum from
// Severity: an Alert can be merely informational, which a TestCase's
// Severity never is.
type AlertSeverity string

const (
	AlertInfo     AlertSeverity = "info"
	AlertWarning  AlertSeverity = "warning"
	AlertCritical AlertSeverity = "critical"
)

func (s AlertSeverity) IsValid() bool {
	switch s {
	case AlertInfo, AlertWarning, AlertCritical:
		return true
	default:
		return false
	}
}

// JudgeSeverity grades a JudgeResult. It adds "none" to AlertSeverity's
// enum, for the case where a judge found no risk at all.
type JudgeSeverity string

const (
	JudgeNone     JudgeSeverity = "none"
	JudgeInfo     JudgeSeverity = "info"
	JudgeWarning  JudgeSeverity = "warning"
	JudgeCritical JudgeSeverity = "critical"
)

func (s JudgeSeverity) IsValid() bool {
	switch s {
	case JudgeNone, JudgeInfo, JudgeWarning, JudgeCritical:
		return true
	default:
		return false
	}
}

// RecommendedAction is the advisory action a Judge or Alert carries. The
// harness never acts on it; it only surfaces it (see Non-goals).
type RecommendedAction string

const (
	ActionLog   RecommendedAction = "log"
	ActionWarn  RecommendedAction = "warn"
	ActionBlock RecommendedAction = "block"
)

func (a RecommendedAction) IsValid() bool {
	switch a {
	case ActionLog, ActionWarn, ActionBlock:
		return true
	default:
		return false
	}
}
