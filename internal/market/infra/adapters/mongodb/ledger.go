package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

var _ ports.OrderLedger = (*OrderLedger)(nil)

// OrderLedger persists orders in the "orders" collection.
type OrderLedger struct {
	coll *mongo.Collection
}

func NewOrderLedger(db *mongo.Database) *OrderLedger {
	return &OrderLedger{coll: db.Collection("orders")}
}

func (l *OrderLedger) Create(ctx context.Context, order *entity.Order) error {
	if _, err := l.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("mongodb: insert order: %w", err)
	}
	return nil
}

func (l *OrderLedger) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	return l.findOne(ctx, bson.M{"_id": id})
}

func (l *OrderLedger) FindByIDForSupplier(ctx context.Context, id, supplierID string) (*entity.Order, error) {
	// The supplier filter folds the ownership check into the lookup, so a
	// foreign order is indistinguishable from a missing one.
	return l.findOne(ctx, bson.M{"_id": id, "supplier": supplierID})
}

func (l *OrderLedger) findOne(ctx context.Context, filter bson.M) (*entity.Order, error) {
	var order entity.Order
	err := l.coll.FindOne(ctx, filter).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ports.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find order: %w", err)
	}
	return &order, nil
}

func (l *OrderLedger) ListByVendor(ctx context.Context, vendorID string) ([]entity.Order, error) {
	return l.list(ctx, bson.M{"vendor": vendorID})
}

func (l *OrderLedger) ListBySupplier(ctx context.Context, supplierID string) ([]entity.Order, error) {
	return l.list(ctx, bson.M{"supplier": supplierID})
}

func (l *OrderLedger) list(ctx context.Context, filter bson.M) ([]entity.Order, error) {
	cur, err := l.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("mongodb: list orders: %w", err)
	}

	var orders []entity.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("mongodb: decode orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus persists a status change with a compare-and-swap on the
// revision the caller loaded. A stale revision matches nothing and surfaces
// as ErrRevisionConflict, so the last writer does not silently win.
func (l *OrderLedger) UpdateStatus(ctx context.Context, order *entity.Order) error {
	res, err := l.coll.UpdateOne(ctx,
		bson.M{"_id": order.ID, "revision": order.Revision},
		bson.M{
			"$set": bson.M{
				"status":        order.Status,
				"acceptedDate":  order.AcceptedDate,
				"deliveredDate": order.DeliveredDate,
				"updatedAt":     order.UpdatedAt,
			},
			"$inc": bson.M{"revision": 1},
		})
	if err != nil {
		return fmt.Errorf("mongodb: update order %s: %w", order.ID, err)
	}
	if res.MatchedCount == 0 {
		return ports.ErrRevisionConflict
	}
	order.Revision++
	return nil
}
