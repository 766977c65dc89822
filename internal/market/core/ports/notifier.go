package ports

import (
	"context"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
)

// Notifier delivers realtime events to a single actor's channel.
//
// The contract is explicitly best-effort, at-most-once: if the recipient has
// no live connection the event is dropped, and there is no queue, retry or
// persistence of missed notifications. Clients recover by refetching on page
// load. Errors are for the caller to log, never to surface to the request
// that triggered the event.
type Notifier interface {
	// NotifyNewOrder pushes a new-order event, carrying the full order view
	// and a human-readable message, to the supplier's channel.
	NotifyNewOrder(ctx context.Context, supplierID string, order *entity.OrderView, message string) error

	// NotifyStatusChange pushes an order-status-update event, carrying the
	// order id and its new status, to the vendor's channel.
	NotifyStatusChange(ctx context.Context, vendorID string, orderID string, status entity.OrderStatus, message string) error
}

// SupplierPicker chooses a supplier for an order placed without an explicit
// supplierId. The default strategy is "first available"; round-robin,
// least-loaded or nearest-by-radius strategies can be substituted without
// touching the order service.
type SupplierPicker interface {
	Pick(ctx context.Context) (*entity.Actor, error)
}
