// Package observability holds the telemetry ports the POS core depends on.
// Adapters for zap, prometheus and OpenTelemetry live under
// internal/infrastructure/observability.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Observability is what use cases, workers and the event bus receive.
type Observability interface {
	Tracer() Tracer
	Logger() Logger
	Metrics() Metrics
}

type Tracer interface {
	Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
}

// Outcome values of the "outcome" metric label and log field. Rejected is a
// business refusal such as insufficient stock or a full invoice.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
	OutcomePanic    = "panic"
)
