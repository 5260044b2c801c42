package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	bookingserrors "docportal/internal/bookings/errors"
	mongotx "docportal/pkg/db/mongo"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockCatalogRepository struct {
	findAllFunc func(ctx context.Context) ([]*model.Service, error)
}

func (m *mockCatalogRepository) FindAll(ctx context.Context) ([]*model.Service, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Service{}, nil
}

func (m *mockCatalogRepository) ListNames(ctx context.Context) ([]*model.Service, error) {
	return nil, errors.New("not implemented")
}

type mockBookingRepository struct {
	findByDateFunc func(ctx context.Context, date string) ([]*model.Booking, error)
}

func (m *mockBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	return errors.New("not implemented")
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByKey(ctx context.Context, key model.BookingKey) (*model.Booking, error) {
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	if m.findByDateFunc != nil {
		return m.findByDateFunc(ctx, date)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByPatient(ctx context.Context, patient string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) MarkPaid(ctx context.Context, id string, transactionID string) error {
	return errors.New("not implemented")
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

func newTestService(catalog *mockCatalogRepository, bookings *mockBookingRepository) AvailabilityService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	cfg := &config.Config{
		Log:         log,
		ReadTimeout: 5 * time.Second,
	}
	return NewAvailabilityService(catalog, bookings, cfg)
}

func testCatalog() []*model.Service {
	return []*model.Service{
		{ID: "1", Name: "Teeth Cleaning", Slots: []string{"9:00 AM", "10:00 AM", "11:00 AM"}, Price: 80},
		{ID: "2", Name: "Cavity Protection", Slots: []string{"9:00 AM", "10:00 AM"}, Price: 60},
	}
}

func TestCompute_SubtractsBookedSlots(t *testing.T) {
	catalog := &mockCatalogRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Service, error) {
			return testCatalog(), nil
		},
	}
	bookings := &mockBookingRepository{
		findByDateFunc: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{Treatment: "Teeth Cleaning", Date: date, Slot: "9:00 AM", Patient: "a@example.com"},
				{Treatment: "Teeth Cleaning", Date: date, Slot: "11:00 AM", Patient: "b@example.com"},
			}, nil
		},
	}

	result, err := newTestService(catalog, bookings).Compute(context.Background(), "May 16, 2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 services, got %d", len(result))
	}

	if got := result[0].Slots; !reflect.DeepEqual(got, []string{"10:00 AM"}) {
		t.Errorf("expected Teeth Cleaning slots [10:00 AM], got %v", got)
	}
	if got := result[1].Slots; !reflect.DeepEqual(got, []string{"9:00 AM", "10:00 AM"}) {
		t.Errorf("expected Cavity Protection slots untouched, got %v", got)
	}
}

func TestCompute_PreservesTemplateOrder(t *testing.T) {
	catalog := &mockCatalogRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Service, error) {
			return []*model.Service{
				{ID: "1", Name: "Teeth Whitening", Slots: []string{"3:00 PM", "9:00 AM", "1:00 PM"}, Price: 120},
			}, nil
		},
	}
	bookings := &mockBookingRepository{
		findByDateFunc: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{Treatment: "Teeth Whitening", Date: date, Slot: "9:00 AM", Patient: "a@example.com"},
			}, nil
		},
	}

	result, err := newTestService(catalog, bookings).Compute(context.Background(), "May 16, 2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := result[0].Slots; !reflect.DeepEqual(got, []string{"3:00 PM", "1:00 PM"}) {
		t.Errorf("expected template order preserved, got %v", got)
	}
}

func TestCompute_NoBookingsReturnsFullTemplate(t *testing.T) {
	catalog := &mockCatalogRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Service, error) {
			return testCatalog(), nil
		},
	}
	bookings := &mockBookingRepository{}

	result, err := newTestService(catalog, bookings).Compute(context.Background(), "Dec 31, 2099")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, svc := range result {
		if !reflect.DeepEqual(svc.Slots, testCatalog()[i].Slots) {
			t.Errorf("service %s: expected full template %v, got %v", svc.Name, testCatalog()[i].Slots, svc.Slots)
		}
	}
}

func TestCompute_FullyBookedServiceHasEmptySlots(t *testing.T) {
	catalog := &mockCatalogRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Service, error) {
			return []*model.Service{
				{ID: "2", Name: "Cavity Protection", Slots: []string{"9:00 AM", "10:00 AM"}, Price: 60},
			}, nil
		},
	}
	bookings := &mockBookingRepository{
		findByDateFunc: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{Treatment: "Cavity Protection", Date: date, Slot: "9:00 AM", Patient: "a@example.com"},
				{Treatment: "Cavity Protection", Date: date, Slot: "10:00 AM", Patient: "b@example.com"},
			}, nil
		},
	}

	result, err := newTestService(catalog, bookings).Compute(context.Background(), "May 16, 2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected the service to remain listed, got %d services", len(result))
	}
	if len(result[0].Slots) != 0 {
		t.Errorf("expected no open slots, got %v", result[0].Slots)
	}
}

func TestCompute_ReadFailuresSurface(t *testing.T) {
	catalogErr := &mockCatalogRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Service, error) {
			return nil, errors.New("connection reset")
		},
	}
	_, err := newTestService(catalogErr, &mockBookingRepository{}).Compute(context.Background(), "May 16, 2026")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected %s error from catalog failure, got %v", apperrors.CodeInternal, err)
	}

	catalog := &mockCatalogRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Service, error) {
			return testCatalog(), nil
		},
	}
	bookingsErr := &mockBookingRepository{
		findByDateFunc: func(ctx context.Context, date string) ([]*model.Booking, error) {
			return nil, errors.New("connection reset")
		},
	}
	_, err = newTestService(catalog, bookingsErr).Compute(context.Background(), "May 16, 2026")
	appErr = apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInternal {
		t.Errorf("expected %s error from bookings failure, got %v", apperrors.CodeInternal, err)
	}
}
