// Package sentinel provides the programmatic surface of the safety
// scaffolding and monitoring harness for multi-agent LLM systems.
//
// The harness wraps any multi-agent framework that can satisfy mas.Framework
// (a way to list agents, generate a reply, drive a workflow, and interpose
// on message delivery) in four composable layers:
//
//   - MASAdapter (package mas): the framework-agnostic operation set,
//     including the direct-manipulation primitives (Chat, InjectMemory,
//     SpoofIdentity, ...) risk tests probe with.
//   - Intermediary (package intermediary): the pre-deployment facade a
//     RiskTest or the Safety coordinator drives instead of touching
//     MASAdapter directly, plus a factory for the four WorkflowRunner
//     variants.
//   - WorkflowRunner (package runner): template-method execution
//     strategies — basic, intercepting, monitored, or both — sharing one
//     run/install/teardown lifecycle.
//   - Safety (package safety): the coordinator that runs RiskTests before
//     deployment and fans the runtime event stream out to Monitor plugins
//     afterward, aggregating both into a Report.
//
// # Getting started
//
// Wrap an existing multi-agent framework and run one risk test against it:
//
//	adapter := sentinel.NewAdapter(myFramework)
//	im := sentinel.NewIntermediary(adapter)
//	safe := sentinel.NewSafety(im, sentinel.WithPlugins(func(r *safety.Registry) {
//		safety.RegisterAll(r, safety.PluginConfig{TargetAgent: "assistant"})
//	}))
//
//	results := safe.RunTests(ctx, []string{"prompt-injection"})
//
// Then monitor a live task:
//
//	safe.StartMonitoring(safety.ModeAll, nil)
//	result, err := safe.RunTask(ctx, "investigate the customer's request", mas.WorkflowOptions{})
//	report := result.Metadata["monitoringReport"].(safety.Report)
package sentinel
