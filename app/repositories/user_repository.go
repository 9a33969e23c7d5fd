package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/dukaan/app/models"
	"github.com/shashiranjanraj/dukaan/pkg/database"
	"github.com/shashiranjanraj/dukaan/pkg/metrics"
)

// UserRepository handles document-store operations for users.
type UserRepository interface {
	// ExistsByUsernameOrEmail reports whether any user matches either field.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Insert persists a new user. Returns ErrDuplicate when the unique
	// index on username or email rejects the write.
	Insert(ctx context.Context, user *models.User) error
	// FindByUsername returns the full user document, hash included.
	FindByUsername(ctx context.Context, username string) (models.User, error)
	// UpdateLastLogin sets last_login on the matching user.
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
	// Profile returns the public projection; the password field is excluded
	// at the query level, it never leaves the store.
	Profile(ctx context.Context, username string) (models.Profile, error)
}

type mongoUserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *database.Mongo) UserRepository {
	return &mongoUserRepository{col: db.Collection(database.UsersCollection)}
}

func (r *mongoUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	defer metrics.ObserveStoreOp(database.UsersCollection, "find", time.Now())

	filter := bson.M{"$or": []bson.M{
		{"username": username},
		{"email": email},
	}}

	err := r.col.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("users: exists: %w", err)
	}
	return true, nil
}

func (r *mongoUserRepository) Insert(ctx context.Context, user *models.User) error {
	defer metrics.ObserveStoreOp(database.UsersCollection, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("users: insert: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *mongoUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	defer metrics.ObserveStoreOp(database.UsersCollection, "find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find: %w", err)
	}
	return user, nil
}

func (r *mongoUserRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	defer metrics.ObserveStoreOp(database.UsersCollection, "update", time.Now())

	_, err := r.col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"last_login": at}},
	)
	if err != nil {
		return fmt.Errorf("users: update last_login: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) Profile(ctx context.Context, username string) (models.Profile, error) {
	defer metrics.ObserveStoreOp(database.UsersCollection, "find", time.Now())

	opts := options.FindOne().SetProjection(bson.M{
		"username":   1,
		"email":      1,
		"created_at": 1,
		"last_login": 1,
	})

	var profile models.Profile
	err := r.col.FindOne(ctx, bson.M{"username": username}, opts).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("users: profile: %w", err)
	}
	return profile, nil
}
