package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
	"github.com/freshly-yours/marketplace/internal/market/eventlog"
)

// Ensure the implementation satisfies the port at compile time.
var _ ports.OrderService = (*OrderService)(nil)

// OrderService implements order placement, guarded status transitions and
// scoped reads over the OrderLedger.
type OrderService struct {
	ledger    ports.OrderLedger
	directory ports.ActorDirectory
	picker    ports.SupplierPicker
	notifier  ports.Notifier
	events    eventlog.Repository // nil-safe: the trail is skipped if nil
}

// NewOrderService wires the order core. events may be nil — the audit trail
// is optional and never affects request outcomes.
func NewOrderService(
	ledger ports.OrderLedger,
	directory ports.ActorDirectory,
	picker ports.SupplierPicker,
	notifier ports.Notifier,
	events eventlog.Repository,
) *OrderService {
	return &OrderService{
		ledger:    ledger,
		directory: directory,
		picker:    picker,
		notifier:  notifier,
		events:    events,
	}
}

func validatePlaceOrder(in ports.PlaceOrderInput) error {
	if in.ProductName == "" {
		return ports.Invalid("productName", "product name is required")
	}
	if in.ProductPrice < 0 {
		return ports.Invalid("productPrice", "product price must not be negative")
	}
	if in.Quantity < 1 {
		return ports.Invalid("quantity", "quantity must be at least 1")
	}
	if in.Address.Street == "" {
		return ports.Invalid("deliveryAddress.street", "street address is required")
	}
	if in.Address.City == "" {
		return ports.Invalid("deliveryAddress.city", "city is required")
	}
	if in.Address.State == "" {
		return ports.Invalid("deliveryAddress.state", "state is required")
	}
	if len(in.Address.Pincode) != 6 {
		return ports.Invalid("deliveryAddress.pincode", "pincode must be 6 characters")
	}
	return nil
}

// resolveSupplier turns an optional explicit supplier id into a verified
// supplier actor. An explicit id that does not resolve to a supplier is
// ErrInvalidSupplier; an omitted id with an empty directory is ErrNoSuppliers.
func (s *OrderService) resolveSupplier(ctx context.Context, supplierID string) (*entity.Actor, error) {
	if supplierID == "" {
		supplier, err := s.picker.Pick(ctx)
		if err != nil {
			return nil, err
		}
		return supplier, nil
	}

	supplier, err := s.directory.FindByID(ctx, supplierID)
	if err != nil {
		return nil, ports.ErrInvalidSupplier
	}
	if supplier.Role != entity.RoleSupplier {
		return nil, ports.ErrInvalidSupplier
	}
	return supplier, nil
}

func (s *OrderService) Place(ctx context.Context, vendor *entity.Actor, in ports.PlaceOrderInput) (*entity.OrderView, error) {
	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	// Supplier resolution and order creation are two separate ledger round
	// trips with a race window in between; acceptable at this scale.
	supplier, err := s.resolveSupplier(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &entity.Order{
		ID:            uuid.NewString(),
		VendorID:      vendor.ID,
		SupplierID:    supplier.ID,
		ProductName:   in.ProductName,
		ProductPrice:  in.ProductPrice,
		Quantity:      in.Quantity,
		TotalAmount:   in.ProductPrice * float64(in.Quantity),
		Address:       in.Address,
		PaymentMethod: entity.PaymentCOD,
		Status:        entity.StatusPlaced,
		Notes:         in.Notes,
		OrderDate:     now,
		UpdatedAt:     now,
		Revision:      1,
	}

	if err := s.ledger.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("order service: create order: %w", err)
	}

	view := &entity.OrderView{
		Order:    *order,
		Vendor:   vendor.Contact(),
		Supplier: supplier.Contact(),
	}

	s.record(ctx, eventlog.NewEntry(ctx, order.ID, eventlog.EventPlaced, vendor.ID, string(order.Status)))

	// Fire-and-forget: the order stands whether or not the supplier is online.
	if err := s.notifier.NotifyNewOrder(ctx, supplier.ID,
		view, fmt.Sprintf("New order received from %s", vendor.Name)); err != nil {
		slog.WarnContext(ctx, "new-order notification dropped",
			"order_id", order.ID, "supplier_id", supplier.ID, "error", err)
	}

	return view, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, supplier *entity.Actor, orderID string, status entity.OrderStatus) (*entity.OrderView, error) {
	if !status.IsUpdatable() {
		return nil, ports.Invalid("status", "status must be accepted, rejected or delivered")
	}

	// Ownership miss and nonexistence are deliberately indistinguishable:
	// a supplier probing foreign order ids learns nothing.
	order, err := s.ledger.FindByIDForSupplier(ctx, orderID, supplier.ID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ports.ErrStatusConflict, order.Status, status)
	}

	now := time.Now().UTC()
	order.Status = status
	order.UpdatedAt = now
	switch status {
	case entity.StatusAccepted:
		order.AcceptedDate = &now
	case entity.StatusDelivered:
		order.DeliveredDate = &now
	}
	// rejected intentionally gets no dedicated timestamp, only UpdatedAt.

	if err := s.ledger.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}

	vendor, err := s.directory.FindByID(ctx, order.VendorID)
	if err != nil {
		return nil, fmt.Errorf("order service: load vendor %s: %w", order.VendorID, err)
	}

	view := &entity.OrderView{
		Order:    *order,
		Vendor:   vendor.Contact(),
		Supplier: supplier.Contact(),
	}

	s.record(ctx, eventlog.NewEntry(ctx, order.ID, eventlog.EventStatusChanged, supplier.ID, string(status)))

	if err := s.notifier.NotifyStatusChange(ctx, vendor.ID, order.ID, status,
		fmt.Sprintf("Your order has been %s", status)); err != nil {
		slog.WarnContext(ctx, "status notification dropped",
			"order_id", order.ID, "vendor_id", vendor.ID, "error", err)
	}

	return view, nil
}

func (s *OrderService) ListForActor(ctx context.Context, actor *entity.Actor) ([]entity.OrderView, error) {
	var (
		orders []entity.Order
		err    error
	)
	if actor.Role == entity.RoleSupplier {
		orders, err = s.ledger.ListBySupplier(ctx, actor.ID)
	} else {
		orders, err = s.ledger.ListByVendor(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("order service: list orders: %w", err)
	}

	// Counterparty contacts are looked up once per distinct actor.
	contacts := map[string]entity.Contact{actor.ID: actor.Contact()}
	views := make([]entity.OrderView, 0, len(orders))
	for _, order := range orders {
		view := entity.OrderView{Order: order}
		var lookupErr error
		view.Vendor, lookupErr = s.contact(ctx, contacts, order.VendorID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		view.Supplier, lookupErr = s.contact(ctx, contacts, order.SupplierID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *OrderService) Get(ctx context.Context, actor *entity.Actor, orderID string) (*entity.OrderView, error) {
	order, err := s.ledger.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Unlike the status-update path, fetch-one distinguishes forbidden from
	// not-found: both parties already know the order exists.
	if order.VendorID != actor.ID && order.SupplierID != actor.ID {
		return nil, ports.ErrAccessDenied
	}

	contacts := map[string]entity.Contact{actor.ID: actor.Contact()}
	view := &entity.OrderView{Order: *order}
	if view.Vendor, err = s.contact(ctx, contacts, order.VendorID); err != nil {
		return nil, err
	}
	if view.Supplier, err = s.contact(ctx, contacts, order.SupplierID); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *OrderService) contact(ctx context.Context, cache map[string]entity.Contact, actorID string) (entity.Contact, error) {
	if c, ok := cache[actorID]; ok {
		return c, nil
	}
	actor, err := s.directory.FindByID(ctx, actorID)
	if err != nil {
		return entity.Contact{}, fmt.Errorf("order service: load actor %s: %w", actorID, err)
	}
	c := actor.Contact()
	cache[actorID] = c
	return c, nil
}

// record appends to the audit trail. Failures are logged, never surfaced:
// the trail is observability, not business state.
func (s *OrderService) record(ctx context.Context, entry *eventlog.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "event trail write failed", "order_id", entry.OrderID, "error", err)
	}
}
