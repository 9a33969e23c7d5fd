package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusPending is the only status an order is ever created with.
const OrderStatusPending = "Pending"

// Order links one cart snapshot and one payment record by identifier.
// Neither reference is verified to exist or to belong to the username.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username  string             `bson:"username" json:"username"`
	Cart      primitive.ObjectID `bson:"cart" json:"cart"`
	Payment   primitive.ObjectID `bson:"payment" json:"payment"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
