package application

import (
	"context"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability/logctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type UseCase[C any, R any] interface {
	Execute(ctx context.Context, cmd C) (R, error)
}

const SpanPrefix = "UC."

// Run tracks one use case invocation. End records the span status, the
// usecase_requests_total and usecase_duration_seconds metrics and a
// use_case_done log entry.
type Run struct {
	useCase string
	span    trace.Span
	logger  observability.Logger
	req     observability.Counter
	dur     observability.Histogram
	start   time.Time

	outcome string
	status  string
	fields  []observability.Field
}

// Begin starts a span named SpanPrefix+spanName and returns a context that
// carries both the span and a logger tagged with the use case.
func Begin(ctx context.Context, tel observability.Observability, base observability.Logger, useCase, spanName string, attrs ...attribute.KeyValue) (context.Context, *Run) {
	if tel == nil {
		tel = nopObservability{}
	}
	attrs = append([]attribute.KeyValue{attribute.String("use_case", useCase)}, attrs...)
	ctx, span := tel.Tracer().Start(ctx, SpanPrefix+spanName, attrs...)

	ctx, logger := logctx.Enrich(ctx, base, observability.F("use_case", useCase))

	return ctx, &Run{
		useCase: useCase,
		span:    span,
		logger:  logger,
		req:     tel.Metrics().Counter(observability.MUsecaseRequests),
		dur:     tel.Metrics().Histogram(observability.MUsecaseDuration),
		start:   time.Now(),
		outcome: observability.OutcomeSuccess,
		status:  "OK",
	}
}

func (r *Run) Span() trace.Span { return r.span }

func (r *Run) Logger() observability.Logger { return r.logger }

// Fail marks the run as failed with a machine readable status.
func (r *Run) Fail(status string) {
	r.outcome, r.status = observability.OutcomeError, status
}

// Reject marks the run as refused by a business rule rather than failed.
func (r *Run) Reject(status string) {
	r.outcome, r.status = observability.OutcomeRejected, status
}

// Status overrides the status text without changing the outcome.
func (r *Run) Status(status string) {
	r.status = status
}

// With adds fields to the final log entry.
func (r *Run) With(fields ...observability.Field) {
	r.fields = append(r.fields, fields...)
}

func (r *Run) End(err error) {
	lat := time.Since(r.start).Seconds()

	if err != nil && r.outcome == observability.OutcomeSuccess {
		r.outcome = observability.OutcomeError
		if r.status == "OK" {
			r.status = "FAILED"
		}
	}

	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, r.status)
	} else {
		r.span.SetStatus(codes.Ok, r.status)
	}

	r.req.Add(1,
		observability.L("use_case", r.useCase),
		observability.L("outcome", r.outcome),
	)
	r.dur.Observe(lat,
		observability.L("use_case", r.useCase),
	)

	fields := append([]observability.Field{
		observability.F("outcome", r.outcome),
		observability.F("status", r.status),
		observability.F("latency_seconds", lat),
	}, r.fields...)
	if sc := r.span.SpanContext(); sc.IsValid() {
		fields = append(fields,
			observability.F("trace_id", sc.TraceID().String()),
			observability.F("span_id", sc.SpanID().String()),
		)
	}
	if err != nil {
		fields = append(fields, observability.F("error", err.Error()))
	}

	r.logger.Info("use_case_done", fields...)
	r.span.End()
}

type nopObservability struct{}

func (nopObservability) Tracer() observability.Tracer   { return observability.NopTracer() }
func (nopObservability) Logger() observability.Logger   { return observability.NopLogger() }
func (nopObservability) Metrics() observability.Metrics { return observability.NopMetrics() }
