// Package sqlite provides a SQLite-backed implementation of
// eventlog.Repository.
//
// WAL mode is enabled on Open so that readers never block writers and vice
// versa — the request goroutine writes trail rows while an operator may be
// querying the trail for a stuck order.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/freshly-yours/marketplace/internal/market/eventlog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// keeping the Docker build on Alpine simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. The table is append-only: each
// row is an immutable event in an order's lifecycle. Querying MAX(occurred_at)
// per order_id gives the last recorded transition.
const schema = `
CREATE TABLE IF NOT EXISTS order_events (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Business identifier: joins the trail with the order ledger.
    -- Not UNIQUE because multiple rows exist per order (one per event).
    order_id     TEXT NOT NULL,

    -- PLACED or STATUS_CHANGED.
    kind         TEXT NOT NULL,

    -- Actor who caused the event: vendor on placement, supplier otherwise.
    actor_id     TEXT NOT NULL,

    -- Order status after the event.
    status       TEXT NOT NULL,

    -- W3C trace_id (32 hex chars) of the active span, '' when absent.
    trace_id     TEXT NOT NULL DEFAULT '',

    -- W3C span_id (16 hex chars), pinpoints the request within the trace.
    span_id      TEXT NOT NULL DEFAULT '',

    -- Wall-clock timestamp (RFC3339 stored as TEXT, SQLite idiom).
    occurred_at  TEXT NOT NULL
);

-- The common query: "give me all events for order X in order".
CREATE INDEX IF NOT EXISTS idx_order_events_order_id ON order_events(order_id, occurred_at);

-- The observability query: "find the order for trace Y".
CREATE INDEX IF NOT EXISTS idx_order_events_trace_id ON order_events(trace_id);
`

const timeLayout = "2006-01-02T15:04:05.999999999Z"

// Repository is the SQLite implementation of eventlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	trail, err := sqlite.Open("./data/events.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver takes _pragma query parameters for connection state.
	// WAL enables concurrent readers; busy_timeout waits for locks instead of
	// failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// Use "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new trail row. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, event *eventlog.Event) error {
	const q = `
		INSERT INTO order_events
			(order_id, kind, actor_id, status, trace_id, span_id, occurred_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		event.OrderID,
		string(event.Kind),
		event.ActorID,
		event.Status,
		event.TraceID,
		event.SpanID,
		event.OccurredAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save event for order %q: %w", event.OrderID, err)
	}
	return nil
}

// GetLatest returns the most recent trail row for an order. Useful when
// debugging a stuck or disputed order.
func (r *Repository) GetLatest(ctx context.Context, orderID string) (*eventlog.Event, error) {
	const q = `
		SELECT order_id, kind, actor_id, status, trace_id, span_id, occurred_at
		FROM   order_events
		WHERE  order_id = ?
		ORDER  BY occurred_at DESC, id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, orderID)

	var event eventlog.Event
	var occurredAt string
	err := row.Scan(
		&event.OrderID,
		&event.Kind,
		&event.ActorID,
		&event.Status,
		&event.TraceID,
		&event.SpanID,
		&occurredAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: no events for order %q", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for order %q: %w", orderID, err)
	}

	event.OccurredAt, err = time.Parse(timeLayout, occurredAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse occurred_at %q: %w", occurredAt, err)
	}
	return &event, nil
}
