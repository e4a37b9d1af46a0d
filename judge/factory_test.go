package judge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/llmclient"
)

func TestFactoryBuildsLLMJudgeWithGenericPromptWhenFileAbsent(t *testing.T) {
	f := New(t.TempDir(), nil)
	f.Client = &llmclient.RetryingClient{Backend: &llmclient.FakeBackend{Responses: []string{"{}"}}}

	j, err := f.Build("prompt-injection", "")
	require.NoError(t, err)
	require.IsType(t, &LLMJudge{}, j)
	require.Equal(t, genericSystemPrompt, j.(*LLMJudge).SystemPrompt)
}

func TestFactoryLoadsRiskSpecificPromptFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data-exfiltration.txt"), []byte("custom prompt body"), 0o644))

	f := New(dir, &llmclient.RetryingClient{Backend: &llmclient.FakeBackend{Responses: []string{"{}"}}})

	j, err := f.Build("data-exfiltration", "llm")
	require.NoError(t, err)
	require.Equal(t, "custom prompt body", j.(*LLMJudge).SystemPrompt)
}

func TestFactoryBuildsRegisteredHeuristic(t *testing.T) {
	f := New("", nil)
	f.RegisterHeuristic("prompt-injection", &HeuristicJudge{Keywords: []string{"ignore previous instructions"}})

	j, err := f.Build("prompt-injection", "heuristic")
	require.NoError(t, err)
	require.IsType(t, &HeuristicJudge{}, j)
}

func TestFactoryBuildFailsForUnknownHeuristic(t *testing.T) {
	f := New("", nil)
	_, err := f.Build("unknown-risk", "heuristic")
	require.Error(t, err)
}

func TestFactoryBuildFailsWithoutClientForLLMType(t *testing.T) {
	f := New("", nil)
	_, err := f.Build("prompt-injection", "llm")
	require.Error(t, err)
}
