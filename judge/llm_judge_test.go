package judge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/llmclient"
)

func TestLLMJudgeParsesFencedJSON(t *testing.T) {
	backend := &llmclient.FakeBackend{Responses: []string{
		"```json\n{\"has_risk\": true, \"severity\": \"critical\", \"reason\": \"leaks credentials\", " +
			"\"evidence\": [\"api_key=...\"], \"recommended_action\": \"block\"}\n```",
	}}
	client := &llmclient.RetryingClient{Backend: backend, RetryCount: 0}
	j := &LLMJudge{Client: client, SystemPrompt: "sys", Type: "llm"}

	result, err := j.Analyze(context.Background(), "some content", nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.True(t, result.HasRisk)
	require.Equal(t, event.JudgeCritical, result.Severity)
	require.Equal(t, event.ActionBlock, result.RecommendedAction)
	require.Equal(t, "llm", result.JudgeType)
}

func TestLLMJudgeParsesUnfencedJSONWithSurroundingText(t *testing.T) {
	backend := &llmclient.FakeBackend{Responses: []string{
		"Sure, here is my analysis: {\"has_risk\": false, \"severity\": \"none\", \"reason\": \"nothing found\", " +
			"\"recommended_action\": \"log\"} — let me know if you need more.",
	}}
	client := &llmclient.RetryingClient{Backend: backend}
	j := &LLMJudge{Client: client, SystemPrompt: "sys"}

	result, err := j.Analyze(context.Background(), "benign content", nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.HasRisk)
}

func TestLLMJudgeReturnsAbsentOnUnparsableResponse(t *testing.T) {
	backend := &llmclient.FakeBackend{Responses: []string{"not json at all"}}
	client := &llmclient.RetryingClient{Backend: backend}
	j := &LLMJudge{Client: client, SystemPrompt: "sys"}

	result, err := j.Analyze(context.Background(), "content", nil)
	require.NoError(t, err)
	require.Nil(t, result, "unparsable response must yield absent, not HasRisk=false")
}

func TestLLMJudgeReturnsAbsentOnLLMFailure(t *testing.T) {
	backend := &llmclient.FakeBackend{FailFirst: 10}
	client := &llmclient.RetryingClient{Backend: backend, RetryCount: 0}
	j := &LLMJudge{Client: client, SystemPrompt: "sys"}

	result, err := j.Analyze(context.Background(), "content", nil)
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestLLMJudgeSubstitutesInvalidEnumValues(t *testing.T) {
	backend := &llmclient.FakeBackend{Responses: []string{
		"{\"has_risk\": true, \"severity\": \"extremely-bad\", \"reason\": \"x\", \"recommended_action\": \"nuke\"}",
	}}
	client := &llmclient.RetryingClient{Backend: backend}
	j := &LLMJudge{Client: client, SystemPrompt: "sys"}

	result, err := j.Analyze(context.Background(), "content", nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, event.JudgeNone, result.Severity)
	require.Equal(t, event.ActionLog, result.RecommendedAction)
}
