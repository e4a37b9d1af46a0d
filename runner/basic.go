package runner

import (
	"context"

	"github.com/trinityguard/sentinel/mas"
)

// Basic runs a workflow with no interception or logging: preRun and
// postRun are identity, and no hook is registered.
type Basic struct {
	Adapter mas.Adapter
}

func (r *Basic) Run(ctx context.Context, task string, opts mas.WorkflowOptions) (mas.WorkflowResult, error) {
	return runTemplate(ctx, r.Adapter, task, opts,
		identityPreRun,
		func(mas.Adapter) func() { return func() {} },
		func(res mas.WorkflowResult, err error) mas.WorkflowResult { return res },
	)
}
