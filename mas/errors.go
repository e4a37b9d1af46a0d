package mas

import (
	"fmt"

	"github.com/trinityguard/sentinel/harnesserr"
)

// ErrUnknownAgent builds the error an Agent lookup returns when name cannot
// be resolved by the adapter.
func ErrUnknownAgent(op, name string) error {
	return harnesserr.New(op, harnesserr.KindUnknownAgent, fmt.Errorf("%q: %w", name, harnesserr.ErrUnknownAgent))
}
