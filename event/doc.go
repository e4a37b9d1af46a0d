// Package event defines the tagged records that flow through the safety
// harness: messages exchanged between agents, the steps and messages a
// workflow run logs, the interception rules a hook chain applies, and the
// results that risk tests, judges, and monitors produce.
//
// These types are passive data. Behavior that creates, consumes, or derives
// them lives in the packages that use them (hook, mas, tracelog, runner,
// judge, monitor, risktest, safety).
package event
