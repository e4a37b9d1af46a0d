package safety

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trinityguard/sentinel/event"
	"github.com/trinityguard/sentinel/intermediary"
	"github.com/trinityguard/sentinel/mas"
	"github.com/trinityguard/sentinel/monitor"
	"github.com/trinityguard/sentinel/registry"
	"github.com/trinityguard/sentinel/risktest"
	"github.com/trinityguard/sentinel/telemetry"
)

// Mode selects which monitors StartMonitoring activates.
type Mode string

const (
	// ModeAll activates every monitor known to the coordinator's registry.
	ModeAll Mode = "all"
	// ModeSelected activates only the monitor names passed as selected.
	ModeSelected Mode = "selected"
	// ModeManual activates no monitors: stopping monitoring is just
	// ignoring subsequent events, so this is equivalent to an empty
	// ModeSelected, kept as its own name for readability at call sites.
	ModeManual Mode = "manual"
)

// TestOutcome is one entry of RunTests'/RunTestsWithMonitoring's result
// map: either a populated Result, or an Error (with AvailableTests set
// when the failure was an unknown test name).
type TestOutcome struct {
	Result              *event.TestResult
	Error               string
	AvailableTests      []string
	MonitorEvaluations  map[string]map[string]any // keyed by failed CaseName
}

// Coordinator is the Safety plugin: it drives RiskTests, fans the runtime
// step stream out to Monitors, and aggregates both into a Report. It owns
// the registry of monitors and risk tests exclusively.
type Coordinator struct {
	im       *intermediary.Intermediary
	registry *Registry
	logger   *slog.Logger
	reg      registry.Registry
	instr    *telemetry.Instruments

	mu           sync.Mutex
	monitors     map[string]monitor.Monitor
	active       map[string]bool
	tests        map[string]risktest.RiskTest
	testResults  map[string]event.TestResult
	alerts       []event.Alert
	monitorLocks map[string]*sync.Mutex
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger attaches logger in place of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// WithDiscovery registers this coordinator's session with reg so other
// processes (e.g. a dashboard) can discover it. It is a best-effort,
// session-scoped hook — registration failures are logged, not fatal.
func WithDiscovery(reg registry.Registry) Option {
	return func(c *Coordinator) { c.reg = reg }
}

// WithInstruments attaches OpenTelemetry counters; alerts are recorded
// against instr.AlertCount as they occur. Test runs are not counted.
func WithInstruments(instr *telemetry.Instruments) Option {
	return func(c *Coordinator) { c.instr = instr }
}

// NewCoordinator builds a Coordinator over im, instantiating every monitor
// and risk test registry knows about. An instantiation failure for one
// plugin is recorded and skipped; the rest remain usable.
func NewCoordinator(im *intermediary.Intermediary, reg *Registry, opts ...Option) *Coordinator {
	c := &Coordinator{
		im:           im,
		registry:     reg,
		logger:       slog.Default(),
		monitors:     map[string]monitor.Monitor{},
		active:       map[string]bool{},
		tests:        map[string]risktest.RiskTest{},
		testResults:  map[string]event.TestResult{},
		monitorLocks: map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, name := range reg.MonitorNames() {
		m, err := reg.buildMonitor(name)
		if err != nil {
			c.logger.Warn("safety: failed to instantiate monitor", "monitor", name, "err", err)
			continue
		}
		c.monitors[name] = m
		c.monitorLocks[name] = &sync.Mutex{}
	}
	for _, name := range reg.RiskTestNames() {
		t, err := reg.buildRiskTest(name)
		if err != nil {
			c.logger.Warn("safety: failed to instantiate risk test", "risk_test", name, "err", err)
			continue
		}
		c.tests[name] = t
	}

	if c.reg != nil {
		info := registry.InstanceInfo{Kind: "coordinator", Name: "safety", InstanceID: uuid.NewString(), StartedAt: time.Now()}
		if err := c.reg.Register(context.Background(), info); err != nil {
			c.logger.Warn("safety: failed to register coordinator session", "err", err)
		}
	}

	return c
}

// RiskTestNames lists every risk test the coordinator successfully
// instantiated.
func (c *Coordinator) RiskTestNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.tests))
	for n := range c.tests {
		names = append(names, n)
	}
	return names
}

// RunTests runs each named risk test against the coordinator's
// intermediary and records its TestResult. An unknown name yields a
// TestOutcome carrying an Error and the list of available test names.
func (c *Coordinator) RunTests(ctx context.Context, names []string) map[string]TestOutcome {
	out := make(map[string]TestOutcome, len(names))
	for _, name := range names {
		c.mu.Lock()
		test, ok := c.tests[name]
		c.mu.Unlock()
		if !ok {
			out[name] = TestOutcome{Error: fmt.Sprintf("unknown risk test %q", name), AvailableTests: c.RiskTestNames()}
			continue
		}

		result, _ := test.Run(ctx, c.im, false, "")
		c.mu.Lock()
		c.testResults[name] = result
		c.mu.Unlock()

		r := result
		out[name] = TestOutcome{Result: &r}
	}
	return out
}

// RunTestsWithMonitoring runs names exactly as RunTests does, then for
// every failed case whose test declares a LinkedMonitor, additionally
// invokes test.EvaluateWithMonitor against that monitor, attaching the
// per-case evaluation under MonitorEvaluations.
func (c *Coordinator) RunTestsWithMonitoring(ctx context.Context, names []string) map[string]TestOutcome {
	out := c.RunTests(ctx, names)

	for name, outcome := range out {
		if outcome.Result == nil {
			continue
		}

		c.mu.Lock()
		test := c.tests[name]
		c.mu.Unlock()
		if test == nil {
			continue
		}

		linked := test.LinkedMonitor()
		if linked == "" {
			continue
		}

		c.mu.Lock()
		m := c.monitors[linked]
		c.mu.Unlock()
		if m == nil {
			continue
		}

		evals := make(map[string]map[string]any)
		for _, d := range outcome.Result.Details {
			if d.Passed {
				continue
			}
			eval, err := test.EvaluateWithMonitor(ctx, d.Response, m)
			if err != nil {
				c.logger.Warn("safety: monitor evaluation failed", "test", name, "case", d.CaseName, "err", err)
				continue
			}
			evals[d.CaseName] = eval
		}
		if len(evals) > 0 {
			outcome.MonitorEvaluations = evals
			out[name] = outcome
		}
	}

	return out
}

// StartMonitoring activates monitors per mode/selected, resetting each
// newly activated monitor exactly once before it can see its first event,
// and clears the session alert list.
func (c *Coordinator) StartMonitoring(mode Mode, selected []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var names []string
	switch mode {
	case ModeAll:
		for n := range c.monitors {
			names = append(names, n)
		}
	case ModeSelected:
		names = selected
	case ModeManual:
		names = nil
	default:
		return fmt.Errorf("safety: unknown monitoring mode %q", mode)
	}

	c.active = make(map[string]bool, len(names))
	for _, n := range names {
		m, ok := c.monitors[n]
		if !ok {
			c.logger.Warn("safety: cannot activate unknown monitor", "monitor", n)
			continue
		}
		m.Reset()
		c.active[n] = true
	}
	c.alerts = nil
	return nil
}

// StartInformedMonitoring activates every monitor, then for each
// (testName, result) pair whose test declares a LinkedMonitor, calls that
// monitor's SetTestContext(result) so its RiskProfile reflects known
// vulnerabilities before the first runtime event arrives. testResults may
// be nil, in which case the coordinator's own accumulated RunTests history
// is used.
func (c *Coordinator) StartInformedMonitoring(testResults map[string]event.TestResult) error {
	if testResults == nil {
		c.mu.Lock()
		testResults = make(map[string]event.TestResult, len(c.testResults))
		for k, v := range c.testResults {
			testResults[k] = v
		}
		c.mu.Unlock()
	}

	if err := c.StartMonitoring(ModeAll, nil); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for testName, result := range testResults {
		test, ok := c.tests[testName]
		if !ok {
			continue
		}
		linked := test.LinkedMonitor()
		if linked == "" {
			continue
		}
		m, ok := c.monitors[linked]
		if !ok {
			continue
		}
		m.SetTestContext(result)
	}
	return nil
}

// Report (see report.go) snapshots the coordinator's current state.

// RunTask drives task through a Monitored runner whose stream callback is
// processEvent, then attaches the resulting Report under
// result.Metadata["monitoringReport"].
func (c *Coordinator) RunTask(ctx context.Context, task string, opts mas.WorkflowOptions) (mas.WorkflowResult, error) {
	r := c.im.MonitoredRunner(c.processEvent)
	result, err := r.Run(ctx, task, opts)

	if result.Metadata == nil {
		result.Metadata = map[string]any{}
	}
	result.Metadata["monitoringReport"] = c.Report()
	return result, err
}

// processEvent fans step out to every active monitor. It is safe to call
// concurrently from distinct agent goroutines: a per-monitor mutex
// guarantees sequential Process calls into any one monitor even when two
// steps are dispatched at once, while distinct monitors still process the
// same step independently. A monitor whose Process call errors or panics
// is logged and skipped; the step still reaches every other monitor.
func (c *Coordinator) processEvent(step event.AgentStepLog) {
	c.mu.Lock()
	actives := make([]monitor.Monitor, 0, len(c.active))
	locks := make([]*sync.Mutex, 0, len(c.active))
	for name := range c.active {
		m, ok := c.monitors[name]
		if !ok {
			continue
		}
		actives = append(actives, m)
		locks = append(locks, c.monitorLocks[name])
	}
	c.mu.Unlock()

	for i, m := range actives {
		alert, err := c.safeProcess(m, step, locks[i])
		if err != nil {
			c.logger.Warn("safety: monitor failed processing step", "monitor", m.Info().Name, "err", err)
			continue
		}
		if alert == nil {
			continue
		}

		now := time.Now()
		alert.Timestamp = &now
		if alert.ID == "" {
			alert.ID = uuid.NewString()
		}

		c.mu.Lock()
		c.alerts = append(c.alerts, *alert)
		c.mu.Unlock()

		if c.instr != nil {
			c.instr.AlertCount.Add(context.Background(), 1)
		}
	}
}

// safeProcess invokes m.Process under lock, converting a panic into an
// error instead of taking down the whole fan-out (the MonitorFailure
// kind spec.md describes).
func (c *Coordinator) safeProcess(m monitor.Monitor, step event.AgentStepLog, lock *sync.Mutex) (alert *event.Alert, err error) {
	if lock != nil {
		lock.Lock()
		defer lock.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("monitor %q panicked: %v", m.Info().Name, r)
		}
	}()
	return m.Process(context.Background(), step)
}
