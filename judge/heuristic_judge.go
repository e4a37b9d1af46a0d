package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/trinityguard/sentinel/event"
)

// HeuristicJudge flags content containing any of Keywords, case-insensitively.
// Unlike LLMJudge it never returns absent: every call yields a concrete
// verdict, including HasRisk=false.
type HeuristicJudge struct {
	Keywords []string
	Severity event.JudgeSeverity
	Action   event.RecommendedAction
	Type     string
}

func (j *HeuristicJudge) Analyze(_ context.Context, content string, _ map[string]string) (*event.JudgeResult, error) {
	lower := strings.ToLower(content)
	var hits []string
	for _, kw := range j.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits = append(hits, kw)
		}
	}

	if len(hits) == 0 {
		return &event.JudgeResult{
			HasRisk:           false,
			Severity:          event.JudgeNone,
			Reason:            "no configured keyword matched",
			RecommendedAction: event.ActionLog,
			JudgeType:         j.jtype(),
		}, nil
	}

	severity := j.Severity
	if !severity.IsValid() {
		severity = event.JudgeWarning
	}
	action := j.Action
	if !action.IsValid() {
		action = event.ActionWarn
	}

	return &event.JudgeResult{
		HasRisk:           true,
		Severity:          severity,
		Reason:            fmt.Sprintf("matched keyword(s): %s", strings.Join(hits, ", ")),
		Evidence:          hits,
		RecommendedAction: action,
		JudgeType:         j.jtype(),
	}, nil
}

func (j *HeuristicJudge) jtype() string {
	if j.Type != "" {
		return j.Type
	}
	return "heuristic"
}
