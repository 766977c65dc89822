package ports

import (
	"context"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
)

// OrderLedger is the port for order persistence. The core depends on this
// abstraction, not on MongoDB directly, so the implementation can be swapped
// for in-memory (tests, local dev) without touching the service.
type OrderLedger interface {
	// Create persists a new order. The order's revision starts at the value
	// the service set; the ledger never invents one.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID returns the order or ErrOrderNotFound.
	FindByID(ctx context.Context, id string) (*entity.Order, error)

	// FindByIDForSupplier returns the order only when the given supplier owns
	// it; both nonexistence and foreign ownership are ErrOrderNotFound.
	FindByIDForSupplier(ctx context.Context, id, supplierID string) (*entity.Order, error)

	// ListByVendor and ListBySupplier return the actor's orders sorted by
	// creation time, newest first.
	ListByVendor(ctx context.Context, vendorID string) ([]entity.Order, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]entity.Order, error)

	// UpdateStatus persists a status change with a compare-and-swap on the
	// order's revision. A stale revision returns ErrRevisionConflict.
	UpdateStatus(ctx context.Context, order *entity.Order) error
}

// ActorDirectory looks up registered actors. Creation happens through it too,
// since registration is just another directory write.
type ActorDirectory interface {
	Create(ctx context.Context, actor *entity.Actor) error
	FindByID(ctx context.Context, id string) (*entity.Actor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Actor, error)
	// FindFirstByRole returns some actor with the given role, in no
	// particular order, or ErrActorNotFound when none exists.
	FindFirstByRole(ctx context.Context, role entity.Role) (*entity.Actor, error)
}

// ProductCatalog persists supplier listings.
type ProductCatalog interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	ListBySupplier(ctx context.Context, supplierID string, activeOnly bool) ([]entity.Product, error)
	// ListActive returns active listings newest first, optionally filtered by
	// a case-insensitive substring match on name, category or description.
	ListActive(ctx context.Context, search string, limit int) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
}
