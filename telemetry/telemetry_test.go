package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewTracerProviderExportsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := NewTracerProvider(context.Background(), "sentinel-test", exporter, nil)
	defer tp.Shutdown(context.Background())

	_, span := Tracer(tp).Start(context.Background(), "unit-test-span")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "unit-test-span", spans[0].Name)
}

func TestNewTracerProviderWithoutExporterStillBuildsSpans(t *testing.T) {
	tp := NewTracerProvider(context.Background(), "sentinel-test", nil, nil)
	defer tp.Shutdown(context.Background())

	_, span := Tracer(tp).Start(context.Background(), "no-exporter-span")
	span.End()
	require.True(t, span.SpanContext().IsValid())
}

func TestNewInstrumentsNilMeterYieldsNil(t *testing.T) {
	instruments, err := NewInstruments(nil)
	require.NoError(t, err)
	require.Nil(t, instruments)
}

func TestNewInstrumentsBuildsAllInstrumentsFromNoopMeter(t *testing.T) {
	instruments, err := NewInstruments(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	require.NotNil(t, instruments)
	require.NotNil(t, instruments.StepCount)
	require.NotNil(t, instruments.StepDuration)
	require.NotNil(t, instruments.AlertCount)
	require.NotNil(t, instruments.TraceDuration)
}
