package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
	"github.com/freshly-yours/marketplace/internal/market/infra/adapters/memory"
)

type catalogFixture struct {
	catalog   *memory.ProductCatalog
	directory *memory.ActorDirectory
	svc       *CatalogService
	supplier  *entity.Actor
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	f := &catalogFixture{
		catalog:   memory.NewProductCatalog(),
		directory: memory.NewActorDirectory(),
	}
	f.svc = NewCatalogService(f.catalog, f.directory)

	f.supplier = &entity.Actor{
		ID: uuid.NewString(), Role: entity.RoleSupplier,
		Name: "Green Farms", Email: "green@example.com", Phone: "9123456780",
	}
	require.NoError(t, f.directory.Create(context.Background(), f.supplier))
	return f
}

func validProduct() ports.ProductInput {
	return ports.ProductInput{
		Name:           "Fresh Tomatoes",
		Price:          25,
		Stock:          120,
		Category:       "vegetables",
		Description:    "Vine-ripened, picked this morning",
		DeliveryRadius: 15,
	}
}

func TestAddProduct(t *testing.T) {
	f := newCatalogFixture(t)

	product, err := f.svc.AddProduct(context.Background(), f.supplier, validProduct())
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, f.supplier.ID, product.SupplierID)
	assert.True(t, product.IsActive)
}

func TestAddProductValidation(t *testing.T) {
	f := newCatalogFixture(t)

	cases := []struct {
		name   string
		mutate func(*ports.ProductInput)
		field  string
	}{
		{"short name", func(in *ports.ProductInput) { in.Name = "X" }, "name"},
		{"negative price", func(in *ports.ProductInput) { in.Price = -1 }, "price"},
		{"negative stock", func(in *ports.ProductInput) { in.Stock = -5 }, "stock"},
		{"radius too small", func(in *ports.ProductInput) { in.DeliveryRadius = 0 }, "deliveryRadius"},
		{"radius too large", func(in *ports.ProductInput) { in.DeliveryRadius = 250 }, "deliveryRadius"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validProduct()
			tc.mutate(&in)

			_, err := f.svc.AddProduct(context.Background(), f.supplier, in)

			var verr *ports.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	f := newCatalogFixture(t)
	product, err := f.svc.AddProduct(context.Background(), f.supplier, validProduct())
	require.NoError(t, err)

	other := &entity.Actor{ID: uuid.NewString(), Role: entity.RoleSupplier, Name: "Hill Produce", Email: "hill@example.com"}
	require.NoError(t, f.directory.Create(context.Background(), other))

	in := validProduct()
	in.Price = 30
	// A foreign product reads as not-found, same as a bogus id.
	_, err = f.svc.UpdateProduct(context.Background(), other, product.ID, in)
	assert.ErrorIs(t, err, ports.ErrProductNotFound)

	updated, err := f.svc.UpdateProduct(context.Background(), f.supplier, product.ID, in)
	require.NoError(t, err)
	assert.Equal(t, float64(30), updated.Price)
}

func TestRemoveProductSoftDeletes(t *testing.T) {
	f := newCatalogFixture(t)
	product, err := f.svc.AddProduct(context.Background(), f.supplier, validProduct())
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveProduct(context.Background(), f.supplier, product.ID))

	// The record survives, deactivated.
	stored, err := f.catalog.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	own, err := f.svc.ListOwn(context.Background(), f.supplier)
	require.NoError(t, err)
	assert.Empty(t, own)

	views, err := f.svc.Browse(context.Background(), ports.BrowseQuery{})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestBrowseFiltersAndDecorates(t *testing.T) {
	f := newCatalogFixture(t)

	_, err := f.svc.AddProduct(context.Background(), f.supplier, validProduct())
	require.NoError(t, err)

	onions := validProduct()
	onions.Name = "Red Onions"
	_, err = f.svc.AddProduct(context.Background(), f.supplier, onions)
	require.NoError(t, err)

	views, err := f.svc.Browse(context.Background(), ports.BrowseQuery{Search: "tomato"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Fresh Tomatoes", views[0].Name)
	assert.Equal(t, "Green Farms", views[0].Supplier.Name)

	views, err = f.svc.Browse(context.Background(), ports.BrowseQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}
