package hook

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/trinityguard/sentinel/event"
)

// CompileCondition compiles a CEL expression into a MessageInterception
// condition. The expression is evaluated with the message's from/to/content
// bound as variables, plus extra bound as a map, so an interception rule
// such as `to == "billing-agent" && content.contains("ssn")` can be loaded
// from configuration instead of compiled into the binary.
func CompileCondition(expr string) (func(event.Message) bool, error) {
	env, err := cel.NewEnv(
		cel.Variable("from", cel.StringType),
		cel.Variable("to", cel.StringType),
		cel.Variable("content", cel.StringType),
		cel.Variable("extra", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("hook: building CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("hook: compiling condition %q: %w", expr, issues.Err())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("hook: building CEL program for %q: %w", expr, err)
	}

	return func(m event.Message) bool {
		extra := m.Extra
		if extra == nil {
			extra = map[string]any{}
		}
		out, _, err := program.Eval(map[string]any{
			"from":    m.From,
			"to":      m.To,
			"content": m.Content,
			"extra":   extra,
		})
		if err != nil {
			return false
		}
		match, ok := out.Value().(bool)
		return ok && match
	}, nil
}
