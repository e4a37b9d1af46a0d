// Package tracelog implements the StructuredLogWriter: the
// begin/append/end lifecycle of a WorkflowTrace, and its optional
// append-only persistence sink.
package tracelog

import (
	"sync"
	"time"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/harnesserr"
)

// Sink persists a sealed trace. Write failures are reported to the caller
// of EndTrace but never corrupt the Writer's in-memory state.
type Sink interface {
	WriteTrace(trace event.WorkflowTrace) error
}

// Writer owns at most one open WorkflowTrace at a time. All operations are
// safe for concurrent use; the underlying MAS framework may drive multiple
// agents on distinct goroutines, each appending steps/messages concurrently.
type Writer struct {
	mu    sync.Mutex
	trace *event.WorkflowTrace
	sink  Sink
	now   func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithSink attaches a persistence sink; EndTrace writes through it.
func WithSink(s Sink) Option {
	return func(w *Writer) { w.sink = s }
}

// withClock overrides the time source, for deterministic tests.
func withClock(now func() time.Time) Option {
	return func(w *Writer) { w.now = now }
}

// NewWriter builds a Writer with no open trace.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// BeginTrace opens a new trace for task. It fails with KindTraceAlreadyOpen
// if a trace is already open.
func (w *Writer) BeginTrace(task string) (event.WorkflowTrace, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.trace != nil {
		return event.WorkflowTrace{}, harnesserr.New("Writer.BeginTrace", harnesserr.KindTraceAlreadyOpen, harnesserr.ErrTraceAlreadyOpen)
	}

	w.trace = &event.WorkflowTrace{
		Task:      task,
		StartTime: w.now(),
	}
	return *w.trace, nil
}

// AppendStep appends step to the open trace. It is a no-op error (returns
// KindNoActiveTrace) if no trace is open.
func (w *Writer) AppendStep(step event.AgentStepLog) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.trace == nil {
		return harnesserr.New("Writer.AppendStep", harnesserr.KindNoActiveTrace, harnesserr.ErrNoActiveTrace)
	}
	w.trace.AgentSteps = append(w.trace.AgentSteps, step)
	return nil
}

// AppendMessage appends msg to the open trace.
func (w *Writer) AppendMessage(msg event.MessageLog) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.trace == nil {
		return harnesserr.New("Writer.AppendMessage", harnesserr.KindNoActiveTrace, harnesserr.ErrNoActiveTrace)
	}
	w.trace.Messages = append(w.trace.Messages, msg)
	return nil
}

// CurrentSteps returns a snapshot of the open trace's steps so far. It
// returns nil if no trace is open.
func (w *Writer) CurrentSteps() []event.AgentStepLog {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.trace == nil {
		return nil
	}
	out := make([]event.AgentStepLog, len(w.trace.AgentSteps))
	copy(out, w.trace.AgentSteps)
	return out
}

// EndTrace seals the open trace, setting Success/Error and EndTime, then
// writes it through the sink if one is configured. A sink write failure is
// returned to the caller but the sealed trace (already detached from the
// Writer) is still returned so the caller can retry persistence itself.
func (w *Writer) EndTrace(success bool, errText string) (event.WorkflowTrace, error) {
	w.mu.Lock()
	if w.trace == nil {
		w.mu.Unlock()
		return event.WorkflowTrace{}, harnesserr.New("Writer.EndTrace", harnesserr.KindNoActiveTrace, harnesserr.ErrNoActiveTrace)
	}
	end := w.now()
	w.trace.EndTime = &end
	w.trace.Success = success
	w.trace.Error = errText
	sealed := *w.trace
	w.trace = nil
	w.mu.Unlock()

	if w.sink != nil {
		if err := w.sink.WriteTrace(sealed); err != nil {
			return sealed, err
		}
	}
	return sealed, nil
}
