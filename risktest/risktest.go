// Package risktest implements the RiskTest plugin contract: a case-driven
// probe that exercises a specific risk through an intermediary.Intermediary,
// aggregating per-case outcomes into an event.TestResult. A failing case
// never aborts the test; a failing test never aborts a coordinator batch.
package risktest

import (
	"context"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/intermediary"
	"github.com/trinityguard/sentinel/monitor"
)

// Level grades how deep a RiskTest probes: L1 static cases only, through
// L3 cases that exercise multi-step agent interaction.
type Level string

const (
	LevelL1 Level = "L1"
	LevelL2 Level = "L2"
	LevelL3 Level = "L3"
)

// Info describes a RiskTest for registry listings and reports.
type Info struct {
	Name        string
	Level       Level
	RiskType    string
	Reference   string
	Description string
}

// RiskTest is a named pre-deployment probe. LinkedMonitor names the Monitor
// whose risk profile should be informed by this test's findings (empty
// string means no linkage).
type RiskTest interface {
	Info() Info
	LoadStaticCases() []event.TestCase
	GenerateDynamicCases(ctx context.Context, masDescription string) ([]event.TestCase, error)
	RunCase(ctx context.Context, c event.TestCase, im *intermediary.Intermediary) (event.CaseResult, error)
	Run(ctx context.Context, im *intermediary.Intermediary, useDynamic bool, masDescription string) (event.TestResult, error)
	LinkedMonitor() string
	EvaluateWithMonitor(ctx context.Context, response string, m monitor.Monitor) (map[string]any, error)
}
