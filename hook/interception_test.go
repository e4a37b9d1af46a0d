package hook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/event"
)

func TestApplyInterceptionsChainsInOrder(t *testing.T) {
	b := "B"
	interceptions := []event.MessageInterception{
		{
			SourceAgent: "A",
			TargetAgent: &b,
			Modifier:    func(s string) string { return s + " [MOD]" },
		},
	}

	msg := event.Message{From: "A", To: "B", Content: "hello"}
	out, applied := ApplyInterceptions(msg, interceptions)

	require.Equal(t, "hello [MOD]", out.Content)
	require.Len(t, applied, 1)
	require.Equal(t, "hello", applied[0].Original)
	require.Equal(t, "hello [MOD]", applied[0].Modified)
}

func TestApplyInterceptionsMultipleMatchesUseWholeChainOriginal(t *testing.T) {
	interceptions := []event.MessageInterception{
		{SourceAgent: "A", Modifier: func(s string) string { return s + "-1" }},
		{SourceAgent: "A", Modifier: func(s string) string { return s + "-2" }},
	}

	msg := event.Message{From: "A", To: "B", Content: "seed"}
	out, applied := ApplyInterceptions(msg, interceptions)

	require.Equal(t, "seed-1-2", out.Content)
	require.Len(t, applied, 2)
	// Both entries report the pre-chain content as "original", per the
	// documented (not "fixed") ambiguity.
	require.Equal(t, "seed", applied[0].Original)
	require.Equal(t, "seed", applied[1].Original)
	require.Equal(t, "seed-1", applied[0].Modified)
	require.Equal(t, "seed-1-2", applied[1].Modified)
}

func TestApplyInterceptionsEmptyListIsIdentity(t *testing.T) {
	msg := event.Message{From: "A", To: "B", Content: "untouched"}
	out, applied := ApplyInterceptions(msg, nil)

	require.Equal(t, msg.Content, out.Content)
	require.Empty(t, applied)
}

func TestCompileConditionEvaluatesAgainstMessageFields(t *testing.T) {
	cond, err := CompileCondition(`to == "billing-agent" && content.contains("ssn")`)
	require.NoError(t, err)

	require.True(t, cond(event.Message{To: "billing-agent", Content: "the ssn is 123"}))
	require.False(t, cond(event.Message{To: "billing-agent", Content: "nothing sensitive"}))
	require.False(t, cond(event.Message{To: "other-agent", Content: "ssn here"}))
}

func TestCompileConditionInvalidExpression(t *testing.T) {
	_, err := CompileCondition("not ( valid cel")
	require.Error(t, err)
}

func TestCompileConditionAsInterceptionCondition(t *testing.T) {
	cond, err := CompileCondition(`from == "A"`)
	require.NoError(t, err)

	mi := event.MessageInterception{
		SourceAgent: "A",
		Condition:   cond,
		Modifier:    strings.ToUpper,
	}
	require.True(t, mi.Matches(event.Message{From: "A", To: "B", Content: "x"}))
	require.False(t, mi.Matches(event.Message{From: "Z", To: "B", Content: "x"}))
}
