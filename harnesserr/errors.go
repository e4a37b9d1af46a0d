// Package harnesserr is the shared error taxonomy used across the safety
// harness. Every subpackage wraps its failures in a *harnesserr.Error so
// callers can use errors.Is/errors.As against a single, stable set of Kind
// constants regardless of which package raised the error.
package harnesserr

import (
	"errors"
	"fmt"
)

// Kind categorizes an Error. Names track the conceptual error kinds of the
// harness's design, not any single package's internal exception types.
type Kind string

const (
	KindUnknownAgent      Kind = "unknown_agent"
	KindNoActiveTrace     Kind = "no_active_trace"
	KindTraceAlreadyOpen  Kind = "trace_already_open"
	KindHookFailure       Kind = "hook_failure"
	KindLLMError          Kind = "llm_error"
	KindJudgeParseFailure Kind = "judge_parse_failure"
	KindTestCaseFailure   Kind = "test_case_failure"
	KindMonitorFailure    Kind = "monitor_failure"
	KindWorkflowFailure   Kind = "workflow_failure"
	KindConfiguration     Kind = "configuration"
	KindInternal          Kind = "internal"
)

// Sentinel errors usable directly with errors.Is.
var (
	ErrUnknownAgent     = errors.New("unknown agent")
	ErrNoActiveTrace    = errors.New("no active trace")
	ErrTraceAlreadyOpen = errors.New("trace already open")
)

// Error is the harness's structured error type: an operation, a kind, and
// the underlying cause.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sentinel: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("sentinel: %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// New builds an *Error for op/kind/err. err may be nil.
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}
