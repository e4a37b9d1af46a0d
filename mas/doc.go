// Package mas defines the MAS (multi-agent LLM system) adapter contract:
// agent lookup, the workflow driver, hook registration, and the
// direct-manipulation primitives tests use. A conforming adapter wraps any
// upstream Framework that offers named agents, a way to drive a multi-turn
// workflow, and a point to interpose on message delivery.
package mas
