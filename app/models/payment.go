package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records the payment-method fields verbatim under a username.
// No gateway integration exists: the card is neither tokenized nor charged,
// and the amount is trusted as supplied rather than recomputed from a cart.
type Payment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username   string             `bson:"username" json:"username"`
	NameOnCard string             `bson:"nameOnCard" json:"nameOnCard"`
	CardNumber string             `bson:"cardNumber" json:"cardNumber"`
	ExpiryDate string             `bson:"expiryDate" json:"expiryDate"`
	CVV        string             `bson:"cvv" json:"cvv"`
	Amount     float64            `bson:"amount" json:"amount"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
