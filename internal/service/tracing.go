package service

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "healthsync/analytics"

// startSpan opens a span and attaches input as the Langfuse observation input.
func startSpan(ctx context.Context, name string, input map[string]any, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
	if inputJSON, err := json.Marshal(input); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}
	return ctx, span
}

// endSpan records output as the Langfuse observation output and ends the span.
func endSpan(span trace.Span, output any) {
	if outputJSON, err := json.Marshal(output); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}
	span.End()
}
