package runner

import (
	"context"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/mas"
	"github.com/trinityguard/sentinel/tracelog"
)

// Monitored emits a MessageLog and an AgentStepLog(receive) for every
// message, invokes an optional stream callback synchronously as each step
// is appended, and attaches the sealed trace and its steps to
// result.Metadata. preRun is identity.
type Monitored struct {
	Adapter  mas.Adapter
	Writer   *tracelog.Writer
	Callback StreamCallback
}

func (r *Monitored) Run(ctx context.Context, task string, opts mas.WorkflowOptions) (mas.WorkflowResult, error) {
	return runTemplate(ctx, r.Adapter, task, opts,
		func(t string) string {
			r.Writer.BeginTrace(t) //nolint:errcheck // TraceAlreadyOpen would indicate caller reuse across concurrent runs
			return t
		},
		r.install,
		r.postRun,
	)
}

func (r *Monitored) install(a mas.Adapter) func() {
	a.RegisterHook(func(m event.Message) (event.Message, error) {
		r.emit(m, m.Content, nil)
		return m, nil
	})
	return func() { a.ClearHooks() }
}

// emit appends the MessageLog and the primary AgentStepLog for a delivered
// message, and notifies the stream callback. extraMeta is merged into the
// receive step's metadata (used by MonitoredIntercepting to note nothing
// extra on the receive step itself — the intercept step carries its own
// metadata separately).
func (r *Monitored) emit(m event.Message, deliveredContent string, extraMeta map[string]any) {
	r.Writer.AppendMessage(event.NewMessageLog(m.From, m.To, deliveredContent, nil)) //nolint:errcheck
	step := event.AgentStepLog{
		AgentName: m.To,
		StepType:  event.StepReceive,
		Content:   deliveredContent,
		Metadata:  extraMeta,
	}
	r.Writer.AppendStep(step) //nolint:errcheck
	if r.Callback != nil {
		r.Callback(step)
	}
}

func (r *Monitored) postRun(res mas.WorkflowResult, err error) mas.WorkflowResult {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	sealed, _ := r.Writer.EndTrace(err == nil, errText)

	if res.Metadata == nil {
		res.Metadata = map[string]any{}
	}
	res.Metadata["trace"] = sealed
	res.Metadata["logs"] = sealed.AgentSteps
	return res
}
