// Package mongodb provides the document-store adapters backing the order
// ledger, the actor directory and the product catalog.
//
// Documents are keyed by string UUIDs assigned in the service layer, so the
// adapters never generate identity. Individual document writes are atomic;
// there are no cross-document transactions.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Connect dials MongoDB, verifies the connection with a ping and returns a
// handle to the named database.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return client.Database(database), client.Disconnect, nil
}
