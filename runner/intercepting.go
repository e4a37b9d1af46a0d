package runner

import (
	"context"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/hook"
	"github.com/trinityguard/sentinel/mas"
)

// Intercepting applies a fixed set of MessageInterceptions to every message
// for the duration of one run. preRun and postRun are identity.
type Intercepting struct {
	Adapter       mas.Adapter
	Interceptions []event.MessageInterception
}

func (r *Intercepting) Run(ctx context.Context, task string, opts mas.WorkflowOptions) (mas.WorkflowResult, error) {
	return runTemplate(ctx, r.Adapter, task, opts,
		identityPreRun,
		r.install,
		func(res mas.WorkflowResult, err error) mas.WorkflowResult { return res },
	)
}

func (r *Intercepting) install(a mas.Adapter) func() {
	a.RegisterHook(func(m event.Message) (event.Message, error) {
		out, _ := hook.ApplyInterceptions(m, r.Interceptions)
		return out, nil
	})
	return func() { a.ClearHooks() }
}
