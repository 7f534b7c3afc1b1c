package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"go.trai.ch/respec/internal/adapters/telemetry"
)

func setupRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	return sr, tp
}

func TestOTelTracer_Start(t *testing.T) {
	sr, tp := setupRecorder()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("respec-test")

	ctx, span := tracer.Start(context.Background(), "demo_pkg")
	assert.NotNil(t, ctx)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "demo_pkg", spans[0].Name())
}

func TestOTelSpan_SetAttribute(t *testing.T) {
	sr, tp := setupRecorder()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("respec-test")

	_, span := tracer.Start(context.Background(), "demo_pkg")
	span.SetAttribute("respec.state", "Corrected")
	span.SetAttribute("respec.changes", 3)
	span.SetAttribute("respec.low_confidence", []string{"libmystery-devel"})
	span.SetAttribute("respec.other", struct{ X int }{X: 1})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, "Corrected", attrs["respec.state"].AsString())
	assert.Equal(t, int64(3), attrs["respec.changes"].AsInt64())
	assert.Equal(t, []string{"libmystery-devel"}, attrs["respec.low_confidence"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["respec.other"].AsString())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr, tp := setupRecorder()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer("respec-test")

	_, span := tracer.Start(context.Background(), "demo_pkg")
	span.RecordError(errors.New("AmbiguousCorrection: conflicting install prefixes"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "AmbiguousCorrection: conflicting install prefixes", spans[0].Status().Description)
}
