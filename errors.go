package sentinel

import "github.com/trinityguard/sentinel/harnesserr"

// Error is the harness's structured error type: an operation, a kind, and
// the underlying cause. It is an alias of harnesserr.Error, the taxonomy
// every subpackage already wraps its failures in — the root package does
// not duplicate it, only re-exports it under the name a caller importing
// only "sentinel" expects.
type Error = harnesserr.Error

// Kind categorizes an Error.
type Kind = harnesserr.Kind

// Kind constants, re-exported from harnesserr.
const (
	KindUnknownAgent      = harnesserr.KindUnknownAgent
	KindNoActiveTrace     = harnesserr.KindNoActiveTrace
	KindTraceAlreadyOpen  = harnesserr.KindTraceAlreadyOpen
	KindHookFailure       = harnesserr.KindHookFailure
	KindLLMError          = harnesserr.KindLLMError
	KindJudgeParseFailure = harnesserr.KindJudgeParseFailure
	KindTestCaseFailure   = harnesserr.KindTestCaseFailure
	KindMonitorFailure    = harnesserr.KindMonitorFailure
	KindWorkflowFailure   = harnesserr.KindWorkflowFailure
	KindConfiguration     = harnesserr.KindConfiguration
	KindInternal          = harnesserr.KindInternal
)

// Sentinel errors usable directly with errors.Is, re-exported from
// harnesserr.
var (
	ErrUnknownAgent     = harnesserr.ErrUnknownAgent
	ErrNoActiveTrace    = harnesserr.ErrNoActiveTrace
	ErrTraceAlreadyOpen = harnesserr.ErrTraceAlreadyOpen
)

// Newf builds an *Error for op/kind/err by delegating to harnesserr.New,
// which is what the subpackages call directly. err may be nil.
func Newf(op string, kind Kind, err error) *Error {
	return harnesserr.New(op, kind, err)
}
