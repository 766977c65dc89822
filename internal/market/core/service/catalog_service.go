package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

var _ ports.CatalogService = (*CatalogService)(nil)

// CatalogService manages supplier listings and the vendor browse view.
// Listings are soft-deleted only, so orders that captured a product's name
// and price stay explicable after the listing disappears.
type CatalogService struct {
	catalog   ports.ProductCatalog
	directory ports.ActorDirectory
}

func NewCatalogService(catalog ports.ProductCatalog, directory ports.ActorDirectory) *CatalogService {
	return &CatalogService{catalog: catalog, directory: directory}
}

const defaultBrowseLimit = 50

func validateProduct(in ports.ProductInput) error {
	if len(in.Name) < 2 {
		return ports.Invalid("name", "product name must be at least 2 characters")
	}
	if in.Price < 0 {
		return ports.Invalid("price", "price must not be negative")
	}
	if in.Stock < 0 {
		return ports.Invalid("stock", "stock must be a non-negative integer")
	}
	if in.DeliveryRadius < 1 || in.DeliveryRadius > 100 {
		return ports.Invalid("deliveryRadius", "delivery radius must be between 1 and 100 km")
	}
	return nil
}

func (s *CatalogService) AddProduct(ctx context.Context, supplier *entity.Actor, in ports.ProductInput) (*entity.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:             uuid.NewString(),
		SupplierID:     supplier.ID,
		Name:           in.Name,
		Price:          in.Price,
		Stock:          in.Stock,
		Category:       in.Category,
		Description:    in.Description,
		DeliveryRadius: in.DeliveryRadius,
		Image:          in.Image,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.catalog.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("catalog service: create product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) ListOwn(ctx context.Context, supplier *entity.Actor) ([]entity.Product, error) {
	products, err := s.catalog.ListBySupplier(ctx, supplier.ID, true)
	if err != nil {
		return nil, fmt.Errorf("catalog service: list products: %w", err)
	}
	return products, nil
}

// ownProduct loads a product and checks ownership. Like the order
// status-update path, a foreign product reads as not-found.
func (s *CatalogService) ownProduct(ctx context.Context, supplier *entity.Actor, productID string) (*entity.Product, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SupplierID != supplier.ID {
		return nil, ports.ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, supplier *entity.Actor, productID string, in ports.ProductInput) (*entity.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	product, err := s.ownProduct(ctx, supplier, productID)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Price = in.Price
	product.Stock = in.Stock
	product.Category = in.Category
	product.Description = in.Description
	product.DeliveryRadius = in.DeliveryRadius
	if in.Image != "" {
		product.Image = in.Image
	}
	product.UpdatedAt = time.Now().UTC()

	if err := s.catalog.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("catalog service: update product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) RemoveProduct(ctx context.Context, supplier *entity.Actor, productID string) error {
	product, err := s.ownProduct(ctx, supplier, productID)
	if err != nil {
		return err
	}

	product.IsActive = false
	product.UpdatedAt = time.Now().UTC()

	if err := s.catalog.Update(ctx, product); err != nil {
		return fmt.Errorf("catalog service: deactivate product: %w", err)
	}
	return nil
}

func (s *CatalogService) Browse(ctx context.Context, q ports.BrowseQuery) ([]entity.ProductView, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultBrowseLimit
	}

	products, err := s.catalog.ListActive(ctx, q.Search, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog service: browse: %w", err)
	}

	contacts := map[string]entity.Contact{}
	views := make([]entity.ProductView, 0, len(products))
	for _, product := range products {
		view := entity.ProductView{Product: product}
		contact, ok := contacts[product.SupplierID]
		if !ok {
			supplier, err := s.directory.FindByID(ctx, product.SupplierID)
			if err != nil {
				return nil, fmt.Errorf("catalog service: load supplier %s: %w", product.SupplierID, err)
			}
			contact = supplier.Contact()
			contacts[product.SupplierID] = contact
		}
		view.Supplier = contact
		views = append(views, view)
	}
	return views, nil
}
