package repository

import (
	"context"
	"fmt"
	"time"

	"docportal/pkg/config"
	"docportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Services"
)

// ServiceRepository reads the treatment catalog. The catalog is seeded out of
// band and never written by this process; availability math works on copies.
type ServiceRepository interface {
	FindAll(ctx context.Context) ([]*model.Service, error)
	ListNames(ctx context.Context) ([]*model.Service, error)
}

type mongoServiceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoServiceRepository(cfg *config.Config) ServiceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoServiceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoServiceRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoServiceRepository) FindAll(ctx context.Context) ([]*model.Service, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.Service
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}

	return services, nil
}

// ListNames returns the catalog projected down to names, for pickers that do
// not need slots or prices.
func (r *mongoServiceRepository) ListNames(ctx context.Context) ([]*model.Service, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"name": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list service names: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.Service
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode service names: %w", err)
	}

	return services, nil
}
