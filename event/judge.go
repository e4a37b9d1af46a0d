package event

// JudgeResult is the outcome of a Judge's analysis of one piece of content.
// A Judge returns *JudgeResult == nil for "absent" (could not decide — LLM
// failure or parse failure). Callers must treat a nil result as "fall back"
// and must never conflate it with a non-nil result carrying HasRisk=false.
type JudgeResult struct {
	HasRisk           bool
	Severity          JudgeSeverity
	Reason            string
	Evidence          []string
	RecommendedAction RecommendedAction
	RawResponse       string
	JudgeType         string
}
