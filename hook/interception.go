package hook

import "github.com/trinityguard/sentinel/event"

// Applied describes one MessageInterception that matched and was applied to
// a message, enough to build the AgentStepLog(intercept, ...) the
// Intercepting runners emit.
type Applied struct {
	Interception event.MessageInterception
	Original     string
	Modified     string
}

// ApplyInterceptions runs every interception in ms against m in order,
// applying each one that matches to the *current* content — so a second
// matching interception sees the first one's output; multiple matches
// chain in registration order. It returns the final message and one
// Applied record per interception that matched, in application order.
//
// Original is reproduced verbatim as the content *before the whole chain
// ran*, the same value for every Applied entry of this message, even
// though each interception actually transforms the *previous*
// interception's output. This reads as a bug and is kept rather than
// "fixed" without confirming intent.
func ApplyInterceptions(m event.Message, ms []event.MessageInterception) (event.Message, []Applied) {
	preChain := m.Content
	cur := m
	var applied []Applied
	for _, mi := range ms {
		if !mi.Matches(cur) {
			continue
		}
		before := cur.Content
		after := before
		if mi.Modifier != nil {
			after = mi.Modifier(before)
		}
		cur = cur.WithContent(after)
		applied = append(applied, Applied{
			Interception: mi,
			Original:     preChain,
			Modified:     after,
		})
	}
	return cur, applied
}
