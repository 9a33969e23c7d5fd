// Package database wraps the MongoDB client: connection lifecycle, collection
// access and the unique indexes the signup path relies on.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Four independent document collections plus the log sink.
const (
	UsersCollection    = "users"
	CartsCollection    = "carts"
	PaymentsCollection = "payments"
	OrdersCollection   = "orders"
	LogsCollection     = "logs"
)

// Mongo is the injected handle to the document store. Constructed once at
// startup, shared read-only afterwards, closed on shutdown.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a pooled connection and verifies it with a ping.
func Connect(ctx context.Context, uri, name string) (*Mongo, error) {
	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Mongo{client: client, db: client.Database(name)}, nil
}

// Collection returns a handle to a named collection.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Ping verifies the connection is live.
func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the application depends on. The unique
// indexes on users.username and users.email are load-bearing: a concurrent
// duplicate signup that passes the existence check is rejected here at
// persistence time.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	users := m.Collection(UsersCollection)
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("database: users indexes: %w", err)
	}

	logs := m.Collection(LogsCollection)
	_, err = logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("database: logs index: %w", err)
	}

	return nil
}

// Close disconnects from the store.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}
