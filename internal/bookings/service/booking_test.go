package service

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/bookings/validator"
	"docportal/pkg/config"
	mongotx "docportal/pkg/db/mongo"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockBookingRepository struct {
	insertFunc        func(ctx context.Context, booking *model.Booking) error
	findByIDFunc      func(ctx context.Context, id string) (*model.Booking, error)
	findByKeyFunc     func(ctx context.Context, key model.BookingKey) (*model.Booking, error)
	findByDateFunc    func(ctx context.Context, date string) ([]*model.Booking, error)
	findByPatientFunc func(ctx context.Context, patient string) ([]*model.Booking, error)
	markPaidFunc      func(ctx context.Context, id string, transactionID string) error
}

func (m *mockBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByKey(ctx context.Context, key model.BookingKey) (*model.Booking, error) {
	if m.findByKeyFunc != nil {
		return m.findByKeyFunc(ctx, key)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	if m.findByDateFunc != nil {
		return m.findByDateFunc(ctx, date)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByPatient(ctx context.Context, patient string) ([]*model.Booking, error) {
	if m.findByPatientFunc != nil {
		return m.findByPatientFunc(ctx, patient)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) MarkPaid(ctx context.Context, id string, transactionID string) error {
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, id, transactionID)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockDispatcher struct {
	mu                sync.Mutex
	bookingConfirmed  []*model.Booking
	paymentsConfirmed []*model.Payment
}

func (m *mockDispatcher) BookingConfirmed(b *model.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookingConfirmed = append(m.bookingConfirmed, b)
}

func (m *mockDispatcher) PaymentConfirmed(b *model.Booking, p *model.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentsConfirmed = append(m.paymentsConfirmed, p)
}

func (m *mockDispatcher) Close() error { return nil }

func (m *mockDispatcher) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookingConfirmed)
}

func newTestConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})

	return &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

func validBooking() *model.Booking {
	return &model.Booking{
		Treatment:   "Teeth Cleaning",
		Date:        "May 16, 2026",
		Slot:        "10:00 AM - 11:00 AM",
		Patient:     "jane@example.com",
		PatientName: "Jane Doe",
	}
}

func newBookingService(repo *mockBookingRepository, dispatcher *mockDispatcher) BookingService {
	cfg := newTestConfig()
	return NewBookingService(repo, validator.NewBookingValidator(cfg.Log), dispatcher, cfg)
}

func TestCreate_NewBooking(t *testing.T) {
	inserted := false
	repo := &mockBookingRepository{
		insertFunc: func(ctx context.Context, booking *model.Booking) error {
			inserted = true
			booking.ID = "64f0c2a9e4b0a1b2c3d4e5f6"
			return nil
		},
	}
	dispatcher := &mockDispatcher{}
	svc := newBookingService(repo, dispatcher)

	created, booking, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for a new booking")
	}
	if !inserted {
		t.Error("expected repository insert to be called")
	}
	if booking.ID == "" {
		t.Error("expected booking ID to be set")
	}
	if dispatcher.bookingCount() != 1 {
		t.Errorf("expected 1 booking confirmation event, got %d", dispatcher.bookingCount())
	}
}

func TestCreate_ExistingBookingIsIdempotent(t *testing.T) {
	existing := validBooking()
	existing.ID = "64f0c2a9e4b0a1b2c3d4e5f6"
	existing.Patient = "jane@example.com"

	insertCalls := 0
	repo := &mockBookingRepository{
		findByKeyFunc: func(ctx context.Context, key model.BookingKey) (*model.Booking, error) {
			return existing, nil
		},
		insertFunc: func(ctx context.Context, booking *model.Booking) error {
			insertCalls++
			return nil
		},
	}
	dispatcher := &mockDispatcher{}
	svc := newBookingService(repo, dispatcher)

	created, booking, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for an existing booking")
	}
	if insertCalls != 0 {
		t.Errorf("expected no insert for an existing booking, got %d", insertCalls)
	}
	if booking.ID != existing.ID {
		t.Errorf("expected existing booking %s, got %s", existing.ID, booking.ID)
	}
	if dispatcher.bookingCount() != 0 {
		t.Error("expected no confirmation event on replay")
	}
}

func TestCreate_LosesRaceToConcurrentInsert(t *testing.T) {
	winner := validBooking()
	winner.ID = "64f0c2a9e4b0a1b2c3d4e5f7"

	findCalls := 0
	repo := &mockBookingRepository{
		findByKeyFunc: func(ctx context.Context, key model.BookingKey) (*model.Booking, error) {
			findCalls++
			if findCalls == 1 {
				return nil, bookingserrors.ErrNotFound
			}
			return winner, nil
		},
		insertFunc: func(ctx context.Context, booking *model.Booking) error {
			return bookingserrors.ErrDuplicateKey
		},
	}
	dispatcher := &mockDispatcher{}
	svc := newBookingService(repo, dispatcher)

	created, booking, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false after losing the insert race")
	}
	if booking.ID != winner.ID {
		t.Errorf("expected winner booking %s, got %s", winner.ID, booking.ID)
	}
	if dispatcher.bookingCount() != 0 {
		t.Error("expected no confirmation event for the losing request")
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Booking)
	}{
		{"missing treatment", func(b *model.Booking) { b.Treatment = "" }},
		{"missing date", func(b *model.Booking) { b.Date = "" }},
		{"missing slot", func(b *model.Booking) { b.Slot = "" }},
		{"invalid email", func(b *model.Booking) { b.Patient = "not-an-email" }},
		{"missing name", func(b *model.Booking) { b.PatientName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				insertFunc: func(ctx context.Context, booking *model.Booking) error {
					t.Error("insert must not be called for invalid input")
					return nil
				},
			}
			svc := newBookingService(repo, &mockDispatcher{})

			booking := validBooking()
			tt.mutate(booking)

			_, _, err := svc.Create(context.Background(), booking)
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected %s error, got %v", apperrors.CodeValidation, err)
			}
		})
	}
}

func TestCreate_SanitizesInput(t *testing.T) {
	var captured *model.Booking
	repo := &mockBookingRepository{
		insertFunc: func(ctx context.Context, booking *model.Booking) error {
			captured = booking
			return nil
		},
	}
	svc := newBookingService(repo, &mockDispatcher{})

	booking := validBooking()
	booking.Patient = "  Jane@Example.COM "
	booking.PatientName = "  Jane   Doe "

	_, _, err := svc.Create(context.Background(), booking)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Patient != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", captured.Patient)
	}
	if captured.PatientName != "Jane Doe" {
		t.Errorf("expected normalized name, got %q", captured.PatientName)
	}
}

func TestGetByID(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			if id == "missing" {
				return nil, bookingserrors.ErrNotFound
			}
			if id == "garbage" {
				return nil, bookingserrors.ErrInvalidID
			}
			b := validBooking()
			b.ID = id
			return b, nil
		},
	}
	svc := newBookingService(repo, &mockDispatcher{})

	tests := []struct {
		name     string
		id       string
		wantCode string
	}{
		{"found", "64f0c2a9e4b0a1b2c3d4e5f6", ""},
		{"not found", "missing", apperrors.CodeNotFound},
		{"invalid id", "garbage", apperrors.CodeInvalidInput},
		{"empty id", "", apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking, err := svc.GetByID(context.Background(), tt.id)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if booking.ID != tt.id {
					t.Errorf("expected booking %s, got %s", tt.id, booking.ID)
				}
				return
			}
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != tt.wantCode {
				t.Errorf("expected %s error, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestListByPatient(t *testing.T) {
	repo := &mockBookingRepository{
		findByPatientFunc: func(ctx context.Context, patient string) ([]*model.Booking, error) {
			if patient != "jane@example.com" {
				t.Errorf("expected normalized patient email, got %q", patient)
			}
			return nil, nil
		},
	}
	svc := newBookingService(repo, &mockDispatcher{})

	bookings, err := svc.ListByPatient(context.Background(), " Jane@Example.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookings == nil {
		t.Error("expected empty slice, got nil")
	}

	_, err = svc.ListByPatient(context.Background(), "")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s error for empty patient, got %v", apperrors.CodeInvalidInput, err)
	}
}
