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

var _ ports.ActorDirectory = (*ActorDirectory)(nil)

// ActorDirectory persists actors in the "users" collection.
type ActorDirectory struct {
	coll *mongo.Collection
}

// NewActorDirectory creates the directory and ensures the unique email index
// backing duplicate-registration detection.
func NewActorDirectory(ctx context.Context, db *mongo.Database) (*ActorDirectory, error) {
	coll := db.Collection("users")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("mongodb: ensure email index: %w", err)
	}
	return &ActorDirectory{coll: coll}, nil
}

func (d *ActorDirectory) Create(ctx context.Context, actor *entity.Actor) error {
	if _, err := d.coll.InsertOne(ctx, actor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ports.ErrDuplicateEmail
		}
		return fmt.Errorf("mongodb: insert actor: %w", err)
	}
	return nil
}

func (d *ActorDirectory) FindByID(ctx context.Context, id string) (*entity.Actor, error) {
	return d.findOne(ctx, bson.M{"_id": id})
}

func (d *ActorDirectory) FindByEmail(ctx context.Context, email string) (*entity.Actor, error) {
	return d.findOne(ctx, bson.M{"email": email})
}

// FindFirstByRole returns whichever matching document the server yields
// first. No ordering is imposed: this backs the first-available supplier
// assignment strategy.
func (d *ActorDirectory) FindFirstByRole(ctx context.Context, role entity.Role) (*entity.Actor, error) {
	return d.findOne(ctx, bson.M{"role": role})
}

func (d *ActorDirectory) findOne(ctx context.Context, filter bson.M) (*entity.Actor, error) {
	var actor entity.Actor
	err := d.coll.FindOne(ctx, filter).Decode(&actor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ports.ErrActorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find actor: %w", err)
	}
	return &actor, nil
}
