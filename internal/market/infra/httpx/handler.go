package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
	"github.com/freshly-yours/marketplace/internal/market/infra/httpx/middlewares"
	"github.com/freshly-yours/marketplace/internal/notify"
)

// Handler handles incoming HTTP requests for the marketplace: auth, catalog,
// orders and the realtime attach endpoint.
type Handler struct {
	auth    ports.AuthService
	catalog ports.CatalogService
	orders  ports.OrderService
	hub     *notify.Hub
}

// NewHandler initializes the handler with its required domain services and
// the session hub backing the websocket endpoint.
func NewHandler(auth ports.AuthService, catalog ports.CatalogService, orders ports.OrderService, hub *notify.Hub) *Handler {
	return &Handler{
		auth:    auth,
		catalog: catalog,
		orders:  orders,
		hub:     hub,
	}
}

// actor pulls the verified actor from the context. The auth middleware runs
// on every route reaching here, so a miss is a wiring bug, not a user error.
func actor(w http.ResponseWriter, r *http.Request) (*entity.Actor, bool) {
	a, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal_error", "no actor on request context")
	}
	return a, ok
}

// PlaceOrder persists a vendor's order and triggers the new-order fan-out.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	vendor, ok := actor(w, r)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.orders.Place(r.Context(), vendor, ports.PlaceOrderInput{
		ProductName:  req.ProductName,
		ProductPrice: req.ProductPrice,
		Quantity:     req.Quantity,
		Address: entity.Address{
			Street:  req.DeliveryAddress.Street,
			City:    req.DeliveryAddress.City,
			State:   req.DeliveryAddress.State,
			Pincode: req.DeliveryAddress.Pincode,
		},
		SupplierID: req.SupplierID,
		Notes:      req.Notes,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, OrderResponse{
		Message: "Order placed successfully",
		Order:   order,
	})
}

// ListOrders returns the caller's orders: the vendor view or the supplier
// view, depending on who asks.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListForActor(r.Context(), caller)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if orders == nil {
		orders = []entity.OrderView{}
	}

	writeJSON(w, http.StatusOK, OrderListResponse{Success: true, Orders: orders})
}

// GetOrder returns a single order visible to the caller.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "order_id_required", "")
		return
	}

	order, err := h.orders.Get(r.Context(), caller, orderID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OrderResponse{Message: "", Order: order})
}

// UpdateOrderStatus moves an order the calling supplier owns along its
// lifecycle and triggers the order-status-update fan-out to the vendor.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	supplier, ok := actor(w, r)
	if !ok {
		return
	}

	orderID := chi.URLParam(r, "id")
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), supplier, orderID, entity.OrderStatus(req.Status))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, OrderResponse{
		Message: fmt.Sprintf("Order %s successfully", order.Status),
		Order:   order,
	})
}

// Health is the liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Freshly Yours API is running"})
}
