// Package memory provides in-memory implementations of the store ports,
// intended for local development and tests only. Do NOT use in production:
// nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

var (
	_ ports.OrderLedger    = (*OrderLedger)(nil)
	_ ports.ActorDirectory = (*ActorDirectory)(nil)
	_ ports.ProductCatalog = (*ProductCatalog)(nil)
)

// OrderLedger is a mutex-guarded map store for orders.
type OrderLedger struct {
	mu     sync.RWMutex
	orders map[string]entity.Order
}

func NewOrderLedger() *OrderLedger {
	return &OrderLedger{orders: make(map[string]entity.Order)}
}

func (l *OrderLedger) Create(ctx context.Context, order *entity.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders[order.ID] = *order
	return nil
}

func (l *OrderLedger) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	order, ok := l.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return &order, nil
}

func (l *OrderLedger) FindByIDForSupplier(ctx context.Context, id, supplierID string) (*entity.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	order, ok := l.orders[id]
	if !ok || order.SupplierID != supplierID {
		return nil, ports.ErrOrderNotFound
	}
	return &order, nil
}

func (l *OrderLedger) ListByVendor(ctx context.Context, vendorID string) ([]entity.Order, error) {
	return l.list(func(o entity.Order) bool { return o.VendorID == vendorID }), nil
}

func (l *OrderLedger) ListBySupplier(ctx context.Context, supplierID string) ([]entity.Order, error) {
	return l.list(func(o entity.Order) bool { return o.SupplierID == supplierID }), nil
}

func (l *OrderLedger) list(match func(entity.Order) bool) []entity.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var orders []entity.Order
	for _, order := range l.orders {
		if match(order) {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders
}

func (l *OrderLedger) UpdateStatus(ctx context.Context, order *entity.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	stored, ok := l.orders[order.ID]
	if !ok {
		return ports.ErrOrderNotFound
	}
	if stored.Revision != order.Revision {
		return ports.ErrRevisionConflict
	}
	order.Revision++
	l.orders[order.ID] = *order
	return nil
}

// ActorDirectory is a mutex-guarded map store for actors. Iteration order of
// FindFirstByRole is whatever the map yields, matching the unordered
// first-available contract.
type ActorDirectory struct {
	mu     sync.RWMutex
	actors map[string]entity.Actor
}

func NewActorDirectory() *ActorDirectory {
	return &ActorDirectory{actors: make(map[string]entity.Actor)}
}

func (d *ActorDirectory) Create(ctx context.Context, actor *entity.Actor) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.actors {
		if existing.Email == actor.Email {
			return ports.ErrDuplicateEmail
		}
	}
	d.actors[actor.ID] = *actor
	return nil
}

func (d *ActorDirectory) FindByID(ctx context.Context, id string) (*entity.Actor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	actor, ok := d.actors[id]
	if !ok {
		return nil, ports.ErrActorNotFound
	}
	return &actor, nil
}

func (d *ActorDirectory) FindByEmail(ctx context.Context, email string) (*entity.Actor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, actor := range d.actors {
		if actor.Email == email {
			return &actor, nil
		}
	}
	return nil, ports.ErrActorNotFound
}

func (d *ActorDirectory) FindFirstByRole(ctx context.Context, role entity.Role) (*entity.Actor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, actor := range d.actors {
		if actor.Role == role {
			return &actor, nil
		}
	}
	return nil, ports.ErrActorNotFound
}

// ProductCatalog is a mutex-guarded map store for products.
type ProductCatalog struct {
	mu       sync.RWMutex
	products map[string]entity.Product
}

func NewProductCatalog() *ProductCatalog {
	return &ProductCatalog{products: make(map[string]entity.Product)}
}

func (c *ProductCatalog) Create(ctx context.Context, product *entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ID] = *product
	return nil
}

func (c *ProductCatalog) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return &product, nil
}

func (c *ProductCatalog) ListBySupplier(ctx context.Context, supplierID string, activeOnly bool) ([]entity.Product, error) {
	return c.list(func(p entity.Product) bool {
		return p.SupplierID == supplierID && (!activeOnly || p.IsActive)
	}, 0), nil
}

func (c *ProductCatalog) ListActive(ctx context.Context, search string, limit int) ([]entity.Product, error) {
	needle := strings.ToLower(search)
	return c.list(func(p entity.Product) bool {
		if !p.IsActive {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	}, limit), nil
}

func (c *ProductCatalog) list(match func(entity.Product) bool, limit int) []entity.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var products []entity.Product
	for _, product := range c.products {
		if match(product) {
			products = append(products, product)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products
}

func (c *ProductCatalog) Update(ctx context.Context, product *entity.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[product.ID]; !ok {
		return ports.ErrProductNotFound
	}
	c.products[product.ID] = *product
	return nil
}
