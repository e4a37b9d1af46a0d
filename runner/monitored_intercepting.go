package runner

import (
	"context"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/hook"
	"github.com/trinityguard/sentinel/mas"
	"github.com/trinityguard/sentinel/tracelog"
)

// MonitoredIntercepting intercepts a message first, then performs the same
// monitored emission as Monitored — but the MessageLog records the
// *modified* content, and one additional AgentStepLog(intercept) is emitted
// per applied interception, carrying {original, modified, source, target}
// in its metadata. The intercept step is emitted once per applied
// interception, not once per matching predicate.
type MonitoredIntercepting struct {
	Adapter       mas.Adapter
	Writer        *tracelog.Writer
	Interceptions []event.MessageInterception
	Callback      StreamCallback
}

func (r *MonitoredIntercepting) Run(ctx context.Context, task string, opts mas.WorkflowOptions) (mas.WorkflowResult, error) {
	inner := &Monitored{Adapter: r.Adapter, Writer: r.Writer, Callback: r.Callback}
	return runTemplate(ctx, r.Adapter, task, opts,
		func(t string) string {
			r.Writer.BeginTrace(t) //nolint:errcheck
			return t
		},
		r.install(inner),
		inner.postRun,
	)
}

func (r *MonitoredIntercepting) install(inner *Monitored) installer {
	return func(a mas.Adapter) func() {
		a.RegisterHook(func(m event.Message) (event.Message, error) {
			out, applied := hook.ApplyInterceptions(m, r.Interceptions)
			for _, app := range applied {
				target := ""
				if app.Interception.TargetAgent != nil {
					target = *app.Interception.TargetAgent
				}
				step := event.AgentStepLog{
					AgentName: m.To,
					StepType:  event.StepIntercept,
					Metadata: map[string]any{
						"original": app.Original,
						"modified": app.Modified,
						"source":   app.Interception.SourceAgent,
						"target":   target,
					},
				}
				inner.Writer.AppendStep(step) //nolint:errcheck
				if inner.Callback != nil {
					inner.Callback(step)
				}
			}
			inner.emit(out, out.Content, nil)
			return out, nil
		})
		return func() { a.ClearHooks() }
	}
}
