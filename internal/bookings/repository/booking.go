package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/pkg/config"
	mongotx "docportal/pkg/db/mongo"
	"docportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	Insert(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByKey(ctx context.Context, key model.BookingKey) (*model.Booking, error)
	FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
	FindByPatient(ctx context.Context, patient string) ([]*model.Booking, error)
	MarkPaid(ctx context.Context, id string, transactionID string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

// Insert creates the booking document. The unique index on
// (treatment, date, patient) makes the insert conditional: a concurrent
// duplicate surfaces as ErrDuplicateKey instead of a second row.
func (r *mongoBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.Paid = false
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByKey(ctx context.Context, key model.BookingKey) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"treatment": key.Treatment,
		"date":      key.Date,
		"patient":   key.Patient,
	}

	var booking model.Booking
	err := r.collection.FindOne(ctx, filter).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking by key: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "treatment", Value: 1}, {Key: "slot", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings for date: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) FindByPatient(ctx context.Context, patient string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "slot", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"patient": patient}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings for patient: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// MarkPaid sets paid=true and the transaction id. The $set is a no-op on a
// booking that is already paid with the same transaction, so retries are safe.
func (r *mongoBookingRepository) MarkPaid(ctx context.Context, id string, transactionID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"paid":           true,
			"transaction_id": transactionID,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark booking paid: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}

	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
