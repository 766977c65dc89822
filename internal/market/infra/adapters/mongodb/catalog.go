package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

var _ ports.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog persists supplier listings in the "products" collection.
type ProductCatalog struct {
	coll *mongo.Collection
}

func NewProductCatalog(db *mongo.Database) *ProductCatalog {
	return &ProductCatalog{coll: db.Collection("products")}
}

func (c *ProductCatalog) Create(ctx context.Context, product *entity.Product) error {
	if _, err := c.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("mongodb: insert product: %w", err)
	}
	return nil
}

func (c *ProductCatalog) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ports.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find product: %w", err)
	}
	return &product, nil
}

func (c *ProductCatalog) ListBySupplier(ctx context.Context, supplierID string, activeOnly bool) ([]entity.Product, error) {
	filter := bson.M{"supplier": supplierID}
	if activeOnly {
		filter["isActive"] = true
	}
	return c.list(ctx, filter, 0)
}

func (c *ProductCatalog) ListActive(ctx context.Context, search string, limit int) ([]entity.Product, error) {
	filter := bson.M{"isActive": true}
	if search != "" {
		pattern := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = []bson.M{
			{"name": pattern},
			{"category": pattern},
			{"description": pattern},
		}
	}
	return c.list(ctx, filter, int64(limit))
}

func (c *ProductCatalog) list(ctx context.Context, filter bson.M, limit int64) ([]entity.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: list products: %w", err)
	}

	var products []entity.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongodb: decode products: %w", err)
	}
	return products, nil
}

func (c *ProductCatalog) Update(ctx context.Context, product *entity.Product) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("mongodb: update product %s: %w", product.ID, err)
	}
	if res.MatchedCount == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}
