package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false}, "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Enabled(t *testing.T) {
	// The exporter connects lazily, so no collector is needed to build it.
	shutdown, err := Setup(context.Background(), Config{
		Enabled:     true,
		Endpoint:    "localhost:4318",
		Insecure:    true,
		ServiceName: "travel-admin",
		SampleRatio: 1,
	}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestNewProvider(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := NewProvider(Config{ServiceName: "travel-admin", SampleRatio: 1}, "1.2.3", sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "unit")
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := spans[0].Resource().Attributes()
	assert.Contains(t, attrs, attribute.String("service.name", "travel-admin"))
	assert.Contains(t, attrs, attribute.String("service.version", "1.2.3"))
}

func TestNewProvider_NeverSample(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := NewProvider(Config{ServiceName: "travel-admin", SampleRatio: 0}, "1.2.3", sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "unit")
	span.End()

	assert.Empty(t, recorder.Ended())
}
