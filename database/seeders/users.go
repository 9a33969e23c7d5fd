package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/config"
	"github.com/shashiranjanraj/dukaan/pkg/database"
	"github.com/shashiranjanraj/dukaan/pkg/hash"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers upserts a demo account for local development:
// username "demo", password "demo123".
func SeedUsers(ctx context.Context, db *database.Mongo) error {
	hashed, err := hash.Password("demo123", config.BcryptCost())
	if err != nil {
		return err
	}

	user := models.User{
		Username:  "demo",
		Email:     "demo@example.com",
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	}

	col := db.Collection(database.UsersCollection)
	_, err = col.UpdateOne(ctx,
		bson.M{"username": user.Username},
		bson.M{"$setOnInsert": user},
		options.Update().SetUpsert(true),
	)
	return err
}
