package event

// MessageInterception rewrites content of messages matching a predicate.
// TargetAgent == nil means "any recipient". Condition == nil means "always
// matches once From/To match". Modifier and Condition are supplied by the
// caller; hook does not care whether Condition wraps a Go closure or a
// compiled CEL program.
type MessageInterception struct {
	SourceAgent string
	TargetAgent *string
	Modifier    func(content string) string
	Condition   func(m Message) bool
}

// Matches reports whether this interception applies to m: From ==
// SourceAgent AND (TargetAgent is nil OR To == *TargetAgent) AND
// (Condition is nil OR Condition(m)).
func (mi MessageInterception) Matches(m Message) bool {
	if m.From != mi.SourceAgent {
		return false
	}
	if mi.TargetAgent != nil && m.To != *mi.TargetAgent {
		return false
	}
	if mi.Condition != nil && !mi.Condition(m) {
		return false
	}
	return true
}
