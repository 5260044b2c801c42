package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	userserrors "docportal/internal/users/errors"
	"docportal/pkg/config"
	"docportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Users"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Upsert writes the profile fields keyed by email. The stored role is
	// not touched on update so an upsert cannot demote an admin.
	Upsert(ctx context.Context, user *model.User) error
	SetRole(ctx context.Context, email string, role model.Role) error
	FindAll(ctx context.Context) ([]*model.User, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoUserRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *mongoUserRepository) Upsert(ctx context.Context, user *model.User) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	user.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	update := bson.M{
		"$set": bson.M{
			"name":       user.Name,
			"updated_at": user.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"email": user.Email,
			"role":  model.RolePatient,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": user.Email}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

func (r *mongoUserRepository) SetRole(ctx context.Context, email string, role model.Role) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"role":       role,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to set user role: %w", err)
	}

	if result.MatchedCount == 0 {
		return userserrors.ErrNotFound
	}

	return nil
}

func (r *mongoUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "email", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}
