package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/llmclient"
)

// llmJudgeResponse is the JSON shape the judge system prompt instructs the
// LLM to emit.
type llmJudgeResponse struct {
	HasRisk           bool     `json:"has_risk"`
	Severity          string   `json:"severity"`
	Reason            string   `json:"reason"`
	Evidence          []string `json:"evidence"`
	RecommendedAction string   `json:"recommended_action"`
}

// LLMJudge drives an llmclient.Client with a risk-specific system prompt
// and parses its JSON response. Any failure to reach a usable verdict —
// LLM error, no JSON object found, or unmarshal failure — returns
// (nil, nil): "absent", not "no risk".
type LLMJudge struct {
	Client       llmclient.Client
	SystemPrompt string
	Type         string // JudgeType tag attached to every non-nil result
	Temperature  *float64
	MaxTokens    *int
	Logger       *slog.Logger
}

func (j *LLMJudge) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *LLMJudge) Analyze(ctx context.Context, content string, judgeCtx map[string]string) (*event.JudgeResult, error) {
	prompt := j.buildPrompt(content, judgeCtx)

	raw, err := j.Client.GenerateWithSystem(ctx, j.SystemPrompt, prompt, j.Temperature, j.MaxTokens)
	if err != nil {
		j.logger().Warn("judge: llm generation failed", "type", j.Type, "err", err)
		return nil, nil
	}

	parsed, err := parseJudgeResponse(raw)
	if err != nil {
		j.logger().Warn("judge: failed to parse llm response", "type", j.Type, "err", err, "raw", raw)
		return nil, nil
	}

	severity := event.JudgeSeverity(parsed.Severity)
	if !severity.IsValid() {
		j.logger().Warn("judge: invalid severity substituted with none", "type", j.Type, "severity", parsed.Severity)
		severity = event.JudgeNone
	}

	action := event.RecommendedAction(parsed.RecommendedAction)
	if !action.IsValid() {
		j.logger().Warn("judge: invalid recommended_action substituted with log", "type", j.Type, "action", parsed.RecommendedAction)
		action = event.ActionLog
	}

	return &event.JudgeResult{
		HasRisk:           parsed.HasRisk,
		Severity:          severity,
		Reason:            parsed.Reason,
		Evidence:          parsed.Evidence,
		RecommendedAction: action,
		RawResponse:       raw,
		JudgeType:         j.Type,
	}, nil
}

func (j *LLMJudge) buildPrompt(content string, judgeCtx map[string]string) string {
	var sb strings.Builder
	sb.WriteString("Content to analyze:\n")
	sb.WriteString(content)
	if len(judgeCtx) > 0 {
		sb.WriteString("\n\nContext:\n")
		for k, v := range judgeCtx {
			fmt.Fprintf(&sb, "%s: %s\n", k, v)
		}
	}
	sb.WriteString("\n\nRespond with valid JSON: {\"has_risk\": <bool>, \"severity\": \"none|info|warning|critical\", " +
		"\"reason\": \"<string>\", \"evidence\": [\"<string>\", ...], \"recommended_action\": \"log|warn|block\"}")
	return sb.String()
}

// parseJudgeResponse strips markdown code fences, finds the outermost JSON
// object by brace position, and unmarshals it.
func parseJudgeResponse(content string) (*llmJudgeResponse, error) {
	content = strings.TrimSpace(content)

	switch {
	case strings.HasPrefix(content, "```json"):
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	case strings.HasPrefix(content, "```"):
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("judge: no JSON object found in response")
	}

	var parsed llmJudgeResponse
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("judge: unmarshal response: %w", err)
	}
	return &parsed, nil
}
