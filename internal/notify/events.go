// Package notify implements the realtime notification fan-out: a session
// registry mapping actor ids to live websocket connections, the two event
// kinds pushed over them, and an optional Redis Pub/Sub bridge so events
// reach sessions held by other instances.
//
// Delivery is at-most-once, best-effort. An actor with no live connection
// simply misses the event; clients refetch on page load to recover.
package notify

import (
	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
)

// EventKind names the two events a channel can carry.
type EventKind string

const (
	// KindNewOrder is delivered to a supplier when a vendor places an order.
	KindNewOrder EventKind = "new-order"
	// KindStatusUpdate is delivered to a vendor when the supplier moves the
	// order along its lifecycle.
	KindStatusUpdate EventKind = "order-status-update"
)

// Event is the wire envelope written to a websocket connection.
type Event struct {
	Kind EventKind `json:"event"`
	Data any       `json:"data"`
}

// NewOrderData carries the full order and a message naming the vendor.
type NewOrderData struct {
	Order   *entity.OrderView `json:"order"`
	Message string            `json:"message"`
}

// StatusUpdateData carries the order id and its new status.
type StatusUpdateData struct {
	OrderID string             `json:"orderId"`
	Status  entity.OrderStatus `json:"status"`
	Message string             `json:"message"`
}
