package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanSubmit = "form.submit"
	SpanDelete = "registry.delete"
)

// Attribute keys.
const (
	AttrEmail        = "user.email"
	AttrUniversity   = "user.university"
	AttrRow          = "registry.row"
	AttrRows         = "registry.rows"
	AttrAccepted     = "form.accepted"
	AttrInvalid      = "form.invalid_fields"
	AttrDuplicateRow = "form.duplicate_row"
	AttrConfirmed    = "delete.confirmed"
)

// Event names.
const (
	EventValidated = "form.validated"
	EventDuplicate = "form.duplicate"
	EventAdded     = "registry.added"
	EventRemoved   = "registry.removed"
)

// StartSubmit opens the span that wraps one submit attempt.
func StartSubmit(ctx context.Context, tracer trace.Tracer, email string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanSubmit,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String(AttrEmail, email)),
	)
}

// StartDelete opens the span that wraps a delete, from request to answer.
func StartDelete(ctx context.Context, tracer trace.Tracer, row int, email string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanDelete,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int(AttrRow, row),
			attribute.String(AttrEmail, email),
		),
	)
}

// RecordError marks span as failed.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
