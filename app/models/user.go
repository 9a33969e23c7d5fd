package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. The password field holds the bcrypt hash,
// never the plaintext, and is excluded from every API response.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	LastLogin *time.Time         `bson:"last_login,omitempty" json:"last_login"`
}

// Profile is the public projection of a User returned by the lookup
// endpoint. It has no password field at all, so the hash cannot leak
// through serialisation.
type Profile struct {
	Username  string     `bson:"username" json:"username"`
	Email     string     `bson:"email" json:"email"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	LastLogin *time.Time `bson:"last_login,omitempty" json:"last_login"`
}
