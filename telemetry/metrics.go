package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Instruments holds the harness's meter instruments. The safety coordinator
// records each alert against AlertCount; nothing in this module records
// StepCount, StepDuration or TraceDuration. A nil *Instruments means
// "not configured".
type Instruments struct {
	StepCount     metric.Int64Counter
	StepDuration  metric.Float64Histogram
	AlertCount    metric.Int64Counter
	TraceDuration metric.Float64Histogram
}

// NewInstruments creates the harness's metric instruments from meter. A
// nil meter yields a nil *Instruments.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	if meter == nil {
		return nil, nil
	}

	stepCount, err := meter.Int64Counter("harness.step.count",
		metric.WithDescription("Number of agent steps logged"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create step count counter: %w", err)
	}

	stepDuration, err := meter.Float64Histogram("harness.step.duration",
		metric.WithDescription("Duration between consecutive agent steps"), metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create step duration histogram: %w", err)
	}

	alertCount, err := meter.Int64Counter("harness.alert.count",
		metric.WithDescription("Number of alerts raised by monitors"), metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create alert count counter: %w", err)
	}

	traceDuration, err := meter.Float64Histogram("harness.trace.duration",
		metric.WithDescription("Duration of a complete workflow trace"), metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: create trace duration histogram: %w", err)
	}

	return &Instruments{
		StepCount:     stepCount,
		StepDuration:  stepDuration,
		AlertCount:    alertCount,
		TraceDuration: traceDuration,
	}, nil
}
