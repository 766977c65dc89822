package eventlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	// TraceID is the W3C trace ID (32 lowercase hex chars). Empty string if
	// no active span is found in the context.
	TraceID string

	// SpanID is the W3C span ID (16 lowercase hex chars).
	SpanID string
}

// ExtractTraceInfo reads the active OpenTelemetry span from ctx and returns
// its trace_id and span_id as hex strings. If the context carries no active
// span (e.g. in unit tests) both fields come back empty and the caller
// records the event without correlation.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Event with the trace info automatically extracted from
// ctx and the timestamp set to now.
//
//	entry := eventlog.NewEntry(ctx, order.ID, eventlog.EventStatusChanged, supplier.ID, "accepted")
//	_ = repo.Save(ctx, entry)
func NewEntry(ctx context.Context, orderID string, kind Kind, actorID, status string) *Event {
	ti := ExtractTraceInfo(ctx)
	return &Event{
		OrderID:    orderID,
		Kind:       kind,
		ActorID:    actorID,
		Status:     status,
		TraceID:    ti.TraceID,
		SpanID:     ti.SpanID,
		OccurredAt: time.Now().UTC(),
	}
}
