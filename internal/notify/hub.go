package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

var _ ports.Notifier = (*Hub)(nil)

// Conn is the subset of *websocket.Conn the hub writes through. Narrowed to
// an interface so tests can observe deliveries without a network.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub is the session registry: actor id → set of live connections. An actor
// may hold several connections (multiple tabs); every one receives each
// event. Membership is established by the websocket endpoint from the
// verified actor on the authenticated upgrade request — the client never
// supplies its own channel id.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[Conn]struct{})}
}

// Register adds a connection to the actor's channel.
func (h *Hub) Register(actorID string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[actorID] == nil {
		h.sessions[actorID] = make(map[Conn]struct{})
	}
	h.sessions[actorID][c] = struct{}{}
}

// Unregister removes a connection; the channel itself disappears with its
// last connection.
func (h *Hub) Unregister(actorID string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.sessions[actorID]
	if !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.sessions, actorID)
	}
}

// Connected reports whether the actor has at least one live connection.
func (h *Hub) Connected(actorID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[actorID]) > 0
}

func (h *Hub) NotifyNewOrder(ctx context.Context, supplierID string, order *entity.OrderView, message string) error {
	return h.Deliver(ctx, supplierID, Event{Kind: KindNewOrder, Data: NewOrderData{Order: order, Message: message}})
}

func (h *Hub) NotifyStatusChange(ctx context.Context, vendorID string, orderID string, status entity.OrderStatus, message string) error {
	return h.Deliver(ctx, vendorID, Event{Kind: KindStatusUpdate, Data: StatusUpdateData{OrderID: orderID, Status: status, Message: message}})
}

// Deliver writes the event to every live connection of the actor. An absent
// recipient is not an error: the event is dropped, per the at-most-once
// contract. A connection that fails to accept the write is evicted — the
// read loop will observe the close and clean up.
func (h *Hub) Deliver(ctx context.Context, actorID string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: marshal %s event: %w", event.Kind, err)
	}
	h.deliverRaw(ctx, actorID, payload)
	return nil
}

func (h *Hub) deliverRaw(ctx context.Context, actorID string, payload []byte) {
	h.mu.RLock()
	conns := make([]Conn, 0, len(h.sessions[actorID]))
	for c := range h.sessions[actorID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.DebugContext(ctx, "evicting dead connection", "actor_id", actorID, "error", err)
			h.Unregister(actorID, c)
			_ = c.Close()
		}
	}
}
