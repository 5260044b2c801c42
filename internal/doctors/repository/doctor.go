package repository

import (
	"context"
	"fmt"
	"time"

	doctorserrors "docportal/internal/doctors/errors"
	"docportal/pkg/config"
	"docportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Doctors"
)

type DoctorRepository interface {
	Insert(ctx context.Context, doctor *model.Doctor) error
	FindAll(ctx context.Context) ([]*model.Doctor, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type mongoDoctorRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDoctorRepository(cfg *config.Config) DoctorRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDoctorRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoDoctorRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoDoctorRepository) Insert(ctx context.Context, doctor *model.Doctor) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doctor.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return doctorserrors.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert doctor: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		doctor.ID = oid.Hex()
	}
	return nil
}

func (r *mongoDoctorRepository) FindAll(ctx context.Context) ([]*model.Doctor, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []*model.Doctor
	if err = cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}

	return doctors, nil
}

func (r *mongoDoctorRepository) DeleteByEmail(ctx context.Context, email string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	if result.DeletedCount == 0 {
		return doctorserrors.ErrNotFound
	}

	return nil
}
