package risktest

import (
	"context"
	"fmt"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/intermediary"
	"github.com/trinityguard/sentinel/monitor"
)

// CaseRunner runs one TestCase and returns its outcome. Concrete RiskTests
// are configured *Base values that supply this as the per-case behavior;
// Base supplies the shared Run template.
type CaseRunner func(ctx context.Context, c event.TestCase, im *intermediary.Intermediary) (event.CaseResult, error)

// DynamicGenerator optionally produces additional cases from an LLM given a
// description of the MAS under test. A nil generator means the test has no
// dynamic cases.
type DynamicGenerator func(ctx context.Context, masDescription string) ([]event.TestCase, error)

// Base implements the shared Run template described in spec §4.7:
//
//	cases = loadStaticCases() ++ (useDynamic ? generateDynamicCases(desc) : [])
//	for each case: try runCase; on exception record {passed: false, error} and continue
//	aggregate: passed <=> every case passed; severitySummary counts failed
//	cases by their original case severity.
//
// Concrete RiskTests are *Base values whose constructors set InfoVal,
// StaticCases, Dynamic (optional), RunCaseFn, and LinkedMonitorName.
type Base struct {
	InfoVal           Info
	StaticCases       []event.TestCase
	Dynamic           DynamicGenerator
	RunCaseFn         CaseRunner
	LinkedMonitorName string
}

func (b *Base) Info() Info { return b.InfoVal }

func (b *Base) LoadStaticCases() []event.TestCase { return b.StaticCases }

func (b *Base) GenerateDynamicCases(ctx context.Context, masDescription string) ([]event.TestCase, error) {
	if b.Dynamic == nil {
		return nil, nil
	}
	return b.Dynamic(ctx, masDescription)
}

func (b *Base) RunCase(ctx context.Context, c event.TestCase, im *intermediary.Intermediary) (event.CaseResult, error) {
	return b.RunCaseFn(ctx, c, im)
}

func (b *Base) LinkedMonitor() string { return b.LinkedMonitorName }

// Run executes the full template against im, aggregating a TestResult. It
// never returns a non-nil error itself — per-case and per-generation
// failures are captured into the TestResult so a batch of tests never
// aborts because one test's dynamic-case generation failed.
func (b *Base) Run(ctx context.Context, im *intermediary.Intermediary, useDynamic bool, masDescription string) (event.TestResult, error) {
	cases := append([]event.TestCase{}, b.LoadStaticCases()...)
	if useDynamic {
		dynamic, err := b.GenerateDynamicCases(ctx, masDescription)
		if err != nil {
			// Dynamic-generation failure degrades to "no dynamic cases"
			// rather than aborting the whole test.
			dynamic = nil
		}
		cases = append(cases, dynamic...)
	}

	result := event.TestResult{RiskName: b.InfoVal.Name, TotalCases: len(cases)}

	for _, c := range cases {
		cr, err := b.runCaseSafely(ctx, c, im)
		if err != nil {
			cr = event.CaseResult{CaseName: c.Name, Passed: false, Error: err.Error(), Severity: c.Severity}
		}
		if cr.Severity == "" {
			cr.Severity = c.Severity
		}
		if !cr.Passed {
			result.FailedCases++
			result.SeveritySummary.Add(c.Severity)
		}
		result.Details = append(result.Details, cr)
	}

	result.Passed = result.FailedCases == 0
	return result, nil
}

// runCaseSafely isolates a single case: a panicking RunCaseFn implementation
// (a test-case crash, per spec's TestCaseFailure kind) is converted into a
// failed CaseResult instead of taking down the whole batch.
func (b *Base) runCaseSafely(ctx context.Context, c event.TestCase, im *intermediary.Intermediary) (cr event.CaseResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("risktest: case %q panicked: %v", c.Name, r)
		}
	}()
	return b.RunCase(ctx, c, im)
}

// EvaluateWithMonitor performs a secondary evaluation of response using m's
// judge, when m implements monitor.JudgeProvider. If m carries no judge,
// it reports that fact rather than erroring, since evaluateWithMonitor is
// documented as optional.
func (b *Base) EvaluateWithMonitor(ctx context.Context, response string, m monitor.Monitor) (map[string]any, error) {
	jp, ok := m.(monitor.JudgeProvider)
	if !ok {
		return map[string]any{"evaluated": false, "reason": "linked monitor has no judge"}, nil
	}

	result, err := jp.Judge().Analyze(ctx, response, map[string]string{"risk_test": b.InfoVal.Name})
	if err != nil {
		return nil, fmt.Errorf("risktest: evaluating with linked monitor's judge: %w", err)
	}
	if result == nil {
		return map[string]any{"evaluated": true, "decision": "absent"}, nil
	}

	return map[string]any{
		"evaluated":          true,
		"has_risk":           result.HasRisk,
		"severity":           result.Severity,
		"reason":             result.Reason,
		"recommended_action": result.RecommendedAction,
	}, nil
}
