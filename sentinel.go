package sentinel

import (
	"fmt"
	"log/slog"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/hook"
	"github.com/trinityguard/sentinel/intermediary"
	"github.com/trinityguard/sentinel/mas"
	"github.com/trinityguard/sentinel/registry"
	"github.com/trinityguard/sentinel/runner"
	"github.com/trinityguard/sentinel/safety"
	"github.com/trinityguard/sentinel/telemetry"
	"github.com/trinityguard/sentinel/tracelog"
)

// Safety, Intermediary, MASAdapter, and WorkflowRunner are the four
// objects the harness's programmatic surface is built from. They are
// plain aliases: the constructors below assemble concrete values of these
// types, they do not introduce new ones.
type (
	Safety         = safety.Coordinator
	Intermediary   = intermediary.Intermediary
	MASAdapter     = mas.Adapter
	WorkflowRunner = runner.Runner
)

// AdapterOption configures NewAdapter.
type AdapterOption func(*mas.BaseAdapter)

// WithHooks registers hooks on the adapter at construction time, in the
// order given.
func WithHooks(hooks ...hook.Hook) AdapterOption {
	return func(a *mas.BaseAdapter) {
		for _, h := range hooks {
			a.RegisterHook(h)
		}
	}
}

// NewAdapter wraps fw in a MASAdapter, applying opts.
func NewAdapter(fw mas.Framework, opts ...AdapterOption) *mas.BaseAdapter {
	a := mas.NewBaseAdapter(fw)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// intermediaryConfig accumulates IntermediaryOption settings.
type intermediaryConfig struct {
	writer *tracelog.Writer
	sink   tracelog.Sink
}

// IntermediaryOption configures NewIntermediary.
type IntermediaryOption func(*intermediaryConfig)

// WithWriter attaches an existing tracelog.Writer instead of building one.
// Takes precedence over WithSink.
func WithWriter(w *tracelog.Writer) IntermediaryOption {
	return func(c *intermediaryConfig) { c.writer = w }
}

// WithSink builds the Intermediary's tracelog.Writer with s as its
// persistence sink, when no explicit WithWriter is given.
func WithSink(s tracelog.Sink) IntermediaryOption {
	return func(c *intermediaryConfig) { c.sink = s }
}

// NewIntermediary builds an Intermediary over adapter, applying opts.
func NewIntermediary(adapter mas.Adapter, opts ...IntermediaryOption) *Intermediary {
	cfg := &intermediaryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	writer := cfg.writer
	if writer == nil {
		var wopts []tracelog.Option
		if cfg.sink != nil {
			wopts = append(wopts, tracelog.WithSink(cfg.sink))
		}
		writer = tracelog.NewWriter(wopts...)
	}
	return intermediary.New(adapter, writer)
}

// safetyConfig accumulates SafetyOption settings.
type safetyConfig struct {
	registry    *safety.Registry
	logger      *slog.Logger
	discovery   registry.Registry
	instruments *telemetry.Instruments
}

// SafetyOption configures NewSafety.
type SafetyOption func(*safetyConfig)

// WithPlugins lets the caller populate the Safety coordinator's plugin
// registry directly, e.g. via safety.RegisterAll. If omitted, NewSafety
// builds an empty registry and the coordinator starts with no monitors or
// risk tests.
func WithPlugins(populate func(*safety.Registry)) SafetyOption {
	return func(c *safetyConfig) {
		if c.registry == nil {
			c.registry = safety.NewRegistry()
		}
		populate(c.registry)
	}
}

// WithSafetyLogger attaches logger in place of slog.Default() for the
// coordinator's own diagnostics (skipped plugins, monitor failures).
func WithSafetyLogger(logger *slog.Logger) SafetyOption {
	return func(c *safetyConfig) { c.logger = logger }
}

// WithDiscovery registers the coordinator's session with reg for
// distributed discovery.
func WithDiscovery(reg registry.Registry) SafetyOption {
	return func(c *safetyConfig) { c.discovery = reg }
}

// WithInstruments attaches OpenTelemetry counters the coordinator records
// alert volume against.
func WithInstruments(instr *telemetry.Instruments) SafetyOption {
	return func(c *safetyConfig) { c.instruments = instr }
}

// NewSafety builds a Safety coordinator over im, applying opts.
func NewSafety(im *Intermediary, opts ...SafetyOption) *Safety {
	cfg := &safetyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.registry == nil {
		cfg.registry = safety.NewRegistry()
	}

	var coordOpts []safety.Option
	if cfg.logger != nil {
		coordOpts = append(coordOpts, safety.WithLogger(cfg.logger))
	}
	if cfg.discovery != nil {
		coordOpts = append(coordOpts, safety.WithDiscovery(cfg.discovery))
	}
	if cfg.instruments != nil {
		coordOpts = append(coordOpts, safety.WithInstruments(cfg.instruments))
	}

	return safety.NewCoordinator(im, cfg.registry, coordOpts...)
}

// RunnerKind selects which WorkflowRunner variant NewRunner builds.
type RunnerKind string

const (
	RunnerBasic                 RunnerKind = "basic"
	RunnerIntercepting          RunnerKind = "intercepting"
	RunnerMonitored             RunnerKind = "monitored"
	RunnerMonitoredIntercepting RunnerKind = "monitored_intercepting"
)

// runnerConfig accumulates RunnerOption settings.
type runnerConfig struct {
	interceptions []event.MessageInterception
	callback      runner.StreamCallback
}

// RunnerOption configures NewRunner.
type RunnerOption func(*runnerConfig)

// WithInterceptions attaches the interception rules an Intercepting or
// MonitoredIntercepting runner applies for the duration of one run.
func WithInterceptions(interceptions ...event.MessageInterception) RunnerOption {
	return func(c *runnerConfig) { c.interceptions = interceptions }
}

// WithStreamCallback attaches the callback a Monitored or
// MonitoredIntercepting runner invokes synchronously per step.
func WithStreamCallback(cb runner.StreamCallback) RunnerOption {
	return func(c *runnerConfig) { c.callback = cb }
}

// NewRunner builds the WorkflowRunner variant named by kind over im,
// applying opts.
func NewRunner(kind RunnerKind, im *Intermediary, opts ...RunnerOption) (WorkflowRunner, error) {
	cfg := &runnerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch kind {
	case RunnerBasic:
		return im.BasicRunner(), nil
	case RunnerIntercepting:
		return im.InterceptingRunner(cfg.interceptions), nil
	case RunnerMonitored:
		return im.MonitoredRunner(cfg.callback), nil
	case RunnerMonitoredIntercepting:
		return im.MonitoredInterceptingRunner(cfg.interceptions, cfg.callback), nil
	default:
		return nil, Newf("NewRunner", KindConfiguration, fmt.Errorf("unknown runner kind %q", kind))
	}
}
