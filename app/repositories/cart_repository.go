package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/database"
	"github.com/shashiranjanraj/dukaan/pkg/metrics"
)

// CartRepository persists cart snapshots. Carts are append-only: every
// insert creates a new document with a fresh store-generated identifier.
type CartRepository interface {
	Insert(ctx context.Context, cart models.Cart) (string, error)
}

type mongoCartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *database.Mongo) CartRepository {
	return &mongoCartRepository{col: db.Collection(database.CartsCollection)}
}

func (r *mongoCartRepository) Insert(ctx context.Context, cart models.Cart) (string, error) {
	defer metrics.ObserveStoreOp(database.CartsCollection, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, cart)
	if err != nil {
		return "", fmt.Errorf("carts: insert: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("carts: unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}
