// Package runner implements the WorkflowRunner hierarchy: four
// composable execution strategies sharing one template method, each
// differing only in preRun, the hook installed for the duration of the
// run, and postRun.
package runner

import (
	"context"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/mas"
)

// Runner executes one workflow under a chosen policy.
type Runner interface {
	Run(ctx context.Context, task string, opts mas.WorkflowOptions) (mas.WorkflowResult, error)
}

// StreamCallback receives each AgentStepLog synchronously as it is
// appended, on the same logical thread of control as the message handler
// that produced it.
type StreamCallback func(event.AgentStepLog)

// installer registers whatever hook a variant needs for the duration of one
// run and returns a cleanup that must run on every exit path.
type installer func(a mas.Adapter) (cleanup func())

// runTemplate is the shared template method every Runner variant uses:
//
//	task'   = preRun(task)
//	installHooksForThisRun()
//	result  = adapter.RunWorkflow(task', opts)
//	result' = postRun(result)
//	removeHooksForThisRun()   // guaranteed on all exit paths
//	return result'
func runTemplate(
	ctx context.Context,
	a mas.Adapter,
	task string,
	opts mas.WorkflowOptions,
	preRun func(string) string,
	install installer,
	postRun func(mas.WorkflowResult, error) mas.WorkflowResult,
) (mas.WorkflowResult, error) {
	task = preRun(task)

	cleanup := install(a)
	defer cleanup()

	result, err := a.RunWorkflow(ctx, task, opts)
	result = postRun(result, err)
	return result, err
}

func identityPreRun(task string) string { return task }
