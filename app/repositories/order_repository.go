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

// OrderRepository persists order documents. The referenced cart and payment
// identifiers are stored as-is; their existence is not verified.
type OrderRepository interface {
	Insert(ctx context.Context, order models.Order) (string, error)
}

type mongoOrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *database.Mongo) OrderRepository {
	return &mongoOrderRepository{col: db.Collection(database.OrdersCollection)}
}

func (r *mongoOrderRepository) Insert(ctx context.Context, order models.Order) (string, error) {
	defer metrics.ObserveStoreOp(database.OrdersCollection, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return "", fmt.Errorf("orders: insert: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("orders: unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}
