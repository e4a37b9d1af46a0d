// Package safety implements the Safety coordinator: it drives pre-
// deployment RiskTests, fans the runtime event stream out to Monitor
// plugins, ties failed test cases to the monitors they inform, and
// aggregates everything into one Report.
package safety

import (
	"fmt"
	"sync"

	"github.com/trinityguard/sentinel/monitor"
	"github.com/trinityguard/sentinel/risktest"
)

// MonitorConstructor builds a fresh Monitor instance. Constructors are
// plain functions rather than auto-registering init() side effects, per
// the harness's design note preferring "an explicit manifest... to keep
// linking deterministic and startup cost visible."
type MonitorConstructor func() (monitor.Monitor, error)

// RiskTestConstructor builds a fresh RiskTest instance.
type RiskTestConstructor func() (risktest.RiskTest, error)

// Registry is the fixed map of component name -> constructor the
// coordinator discovers plugins from at startup.
type Registry struct {
	mu        sync.Mutex
	monitors  map[string]MonitorConstructor
	riskTests map[string]RiskTestConstructor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		monitors:  map[string]MonitorConstructor{},
		riskTests: map[string]RiskTestConstructor{},
	}
}

// RegisterMonitor adds name -> ctor to the registry, overwriting any prior
// registration under the same name.
func (r *Registry) RegisterMonitor(name string, ctor MonitorConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.monitors[name] = ctor
}

// RegisterRiskTest adds name -> ctor to the registry, overwriting any
// prior registration under the same name.
func (r *Registry) RegisterRiskTest(name string, ctor RiskTestConstructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.riskTests[name] = ctor
}

// MonitorNames lists every registered monitor name.
func (r *Registry) MonitorNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.monitors))
	for n := range r.monitors {
		names = append(names, n)
	}
	return names
}

// RiskTestNames lists every registered risk test name.
func (r *Registry) RiskTestNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.riskTests))
	for n := range r.riskTests {
		names = append(names, n)
	}
	return names
}

func (r *Registry) buildMonitor(name string) (monitor.Monitor, error) {
	r.mu.Lock()
	ctor, ok := r.monitors[name]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("safety: no monitor registered under name %q", name)
	}
	return ctor()
}

func (r *Registry) buildRiskTest(name string) (risktest.RiskTest, error) {
	r.mu.Lock()
	ctor, ok := r.riskTests[name]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("safety: no risk test registered under name %q", name)
	}
	return ctor()
}
