package ports

import (
	"context"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
)

// PlaceOrderInput carries everything a vendor submits when ordering.
// SupplierID is optional: when empty the service picks one via the configured
// SupplierPicker strategy.
type PlaceOrderInput struct {
	ProductName  string
	ProductPrice float64
	Quantity     int
	Address      entity.Address
	SupplierID   string
	Notes        string
}

// OrderService is the core of the system: placement, guarded status
// transitions, and scoped reads. The acting actor always comes from the
// authenticated request context, never from the request body.
type OrderService interface {
	// Place validates the input, resolves a supplier, persists the order in
	// the placed state and emits a best-effort new-order notification to the
	// supplier. The returned order is only handed back after persistence
	// succeeded; a failed notification does not roll it back.
	Place(ctx context.Context, vendor *entity.Actor, in PlaceOrderInput) (*entity.OrderView, error)

	// UpdateStatus moves an order the supplier owns along a legal lifecycle
	// edge. An order that does not exist and an order owned by someone else
	// are both reported as ErrOrderNotFound. Illegal edges and lost
	// compare-and-swap races return ErrStatusConflict.
	UpdateStatus(ctx context.Context, supplier *entity.Actor, orderID string, status entity.OrderStatus) (*entity.OrderView, error)

	// ListForActor returns the actor's orders, newest first, with the
	// counterparty's contact fields populated. Full-scan semantics; the
	// listing is not paginated.
	ListForActor(ctx context.Context, actor *entity.Actor) ([]entity.OrderView, error)

	// Get returns a single order visible to the actor. Nonexistence is
	// ErrOrderNotFound; an existing order the actor is no party to is
	// ErrAccessDenied.
	Get(ctx context.Context, actor *entity.Actor, orderID string) (*entity.OrderView, error)
}

// ProductInput is a supplier's catalog submission.
type ProductInput struct {
	Name           string
	Price          float64
	Stock          int
	Category       string
	Description    string
	DeliveryRadius int
	Image          string
}

// BrowseQuery narrows the vendor-facing product listing.
type BrowseQuery struct {
	Search string
	Limit  int
}

// CatalogService manages supplier listings and the vendor browse view.
type CatalogService interface {
	AddProduct(ctx context.Context, supplier *entity.Actor, in ProductInput) (*entity.Product, error)
	ListOwn(ctx context.Context, supplier *entity.Actor) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, supplier *entity.Actor, productID string, in ProductInput) (*entity.Product, error)
	// RemoveProduct soft-deletes: the listing is deactivated, never erased.
	RemoveProduct(ctx context.Context, supplier *entity.Actor, productID string) error
	Browse(ctx context.Context, q BrowseQuery) ([]entity.ProductView, error)
}

// RegisterInput is a new actor signup.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     entity.Role
	Address  entity.ActorAddress
}

// AuthService issues and verifies actor identity. Tokens are opaque to the
// rest of the system; middleware exchanges them for an *entity.Actor.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*entity.Actor, string, error)
	Login(ctx context.Context, email, password string) (*entity.Actor, string, error)
	// Authenticate resolves a bearer token to the actor it was issued for.
	Authenticate(ctx context.Context, token string) (*entity.Actor, error)
}
