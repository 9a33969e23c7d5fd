package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line of a cart snapshot. Price and quantity are recorded
// as supplied by the client; the server is not a pricing authority and does
// not range-check them.
type CartItem struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity float64 `bson:"quantity" json:"quantity"`
}

// Cart is an append-only snapshot of a client-side cart, persisted at
// checkout time. Every save creates a new document; there is no single
// mutable per-user cart on the server. The username is a nominal reference,
// not a managed relation.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username  string             `bson:"username" json:"username"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
