// Package judge provides LLM-backed and heuristic analysis of message
// content, producing a tri-state event.JudgeResult: present-with-risk,
// present-without-risk, or absent (could not decide).
package judge

import (
	"context"

	"github.com/trinityguard/sentinel/event"
)

// Judge analyzes a single piece of content and returns its verdict.
// A nil *event.JudgeResult means "absent" — the caller must fall back
// to another signal, never treat it as HasRisk=false.
type Judge interface {
	Analyze(ctx context.Context, content string, context map[string]string) (*event.JudgeResult, error)
}
