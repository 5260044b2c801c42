package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	paymentserrors "docportal/internal/payments/errors"
	"docportal/pkg/config"
	"docportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName = "Payments"
)

type PaymentRepository interface {
	// Record appends the payment. The unique index on transaction_id turns a
	// replayed record into ErrDuplicateTransaction instead of a second row.
	Record(ctx context.Context, payment *model.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
}

type mongoPaymentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPaymentRepository(cfg *config.Config) PaymentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPaymentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPaymentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPaymentRepository) Record(ctx context.Context, payment *model.Payment) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	payment.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return paymentserrors.ErrDuplicateTransaction
		}
		return fmt.Errorf("failed to record payment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		payment.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var payment model.Payment
	err := r.collection.FindOne(ctx, bson.M{"transaction_id": transactionID}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, paymentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	return &payment, nil
}
