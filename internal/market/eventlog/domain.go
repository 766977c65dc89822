// Package eventlog defines the order event trail: a durable, append-only
// record of every lifecycle event an order goes through.
//
// It serves observability, not business state: you can query the store to see
// exactly how an order moved through its lifecycle, who moved it, and jump
// from any row to the distributed trace via the trace_id field. The ledger
// remains the source of truth for current status.
package eventlog

import (
	"context"
	"time"
)

// Kind labels what happened to the order.
type Kind string

const (
	// EventPlaced is written once when a vendor places the order.
	EventPlaced Kind = "PLACED"
	// EventStatusChanged is written on every supplier-driven transition.
	EventStatusChanged Kind = "STATUS_CHANGED"
)

// Event is one immutable row in the trail.
type Event struct {
	// OrderID joins the trail with the ledger.
	OrderID string

	// Kind of lifecycle event this row records.
	Kind Kind

	// ActorID is the actor who caused the event: the vendor on placement,
	// the supplier on a transition.
	ActorID string

	// Status is the order status after the event.
	Status string

	// TraceID and SpanID are the W3C identifiers of the active span when the
	// event was written. Empty when no span is active (e.g. in tests).
	TraceID string
	SpanID  string

	// OccurredAt is the wall-clock time of the event.
	OccurredAt time.Time
}

// Repository is the port for persisting trail entries. The order service
// depends on this abstraction, not on SQLite directly, so the implementation
// can be swapped for Postgres, in-memory (tests), etc.
type Repository interface {
	// Save appends a row. The trail is an append-only audit log, not an
	// upsert: each call writes a new immutable entry.
	Save(ctx context.Context, event *Event) error
}
