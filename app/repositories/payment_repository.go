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

// PaymentRepository persists payment records verbatim.
type PaymentRepository interface {
	Insert(ctx context.Context, payment models.Payment) (string, error)
}

type mongoPaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *database.Mongo) PaymentRepository {
	return &mongoPaymentRepository{col: db.Collection(database.PaymentsCollection)}
}

func (r *mongoPaymentRepository) Insert(ctx context.Context, payment models.Payment) (string, error) {
	defer metrics.ObserveStoreOp(database.PaymentsCollection, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, payment)
	if err != nil {
		return "", fmt.Errorf("payments: insert: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("payments: unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}
