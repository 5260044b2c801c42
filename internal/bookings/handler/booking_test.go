package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"docportal/internal/bookings/service"
	"docportal/pkg/auth"
	"docportal/pkg/logger"
	"docportal/pkg/middleware"
	"docportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockBookingService struct {
	createFunc        func(ctx context.Context, booking *model.Booking) (bool, *model.Booking, error)
	getByIDFunc       func(ctx context.Context, id string) (*model.Booking, error)
	listByPatientFunc func(ctx context.Context, patient string) ([]*model.Booking, error)
}

var _ service.BookingService = (*mockBookingService)(nil)

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) (bool, *model.Booking, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return true, booking, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingService) ListByPatient(ctx context.Context, patient string) ([]*model.Booking, error) {
	if m.listByPatientFunc != nil {
		return m.listByPatientFunc(ctx, patient)
	}
	return []*model.Booking{}, nil
}

type mockConfirmer struct {
	confirmFunc func(ctx context.Context, bookingID string, payment *model.Payment) (*model.Booking, error)
}

func (m *mockConfirmer) Confirm(ctx context.Context, bookingID string, payment *model.Payment) (*model.Booking, error) {
	if m.confirmFunc != nil {
		return m.confirmFunc(ctx, bookingID, payment)
	}
	return &model.Booking{ID: bookingID, Paid: true}, nil
}

func testRouter(t *testing.T, svc service.BookingService, confirmer PaymentConfirmer, tokens *auth.TokenManager) *httprouter.Router {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	h := NewBookingHandler(svc, confirmer, middleware.RequireAuth(tokens, log), log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func signedToken(t *testing.T, tokens *auth.TokenManager, email string) string {
	t.Helper()
	token, err := tokens.Sign(email)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestListByPatient_SelfOnly(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := testRouter(t, &mockBookingService{}, &mockConfirmer{}, tokens)

	tests := []struct {
		name       string
		patient    string
		tokenEmail string
		wantStatus int
	}{
		{"own bookings", "jane@example.com", "jane@example.com", http.StatusOK},
		{"someone else's bookings", "other@example.com", "jane@example.com", http.StatusForbidden},
		{"case-insensitive email match", "Jane@Example.com", "jane@example.com", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/booking?patient="+tt.patient, nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, tokens, tt.tokenEmail))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListByPatient_RequiresToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := testRouter(t, &mockBookingService{}, &mockConfirmer{}, tokens)

	req := httptest.NewRequest(http.MethodGet, "/booking?patient=jane@example.com", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", rec.Code)
	}
}

func TestCreate_ResponseShape(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	existing := &model.Booking{
		ID:        "64f0c2a9e4b0a1b2c3d4e5f6",
		Treatment: "Teeth Cleaning",
		Date:      "May 16, 2026",
		Patient:   "jane@example.com",
	}

	tests := []struct {
		name        string
		created     bool
		wantStatus  int
		wantCreated bool
	}{
		{"new booking", true, http.StatusCreated, true},
		{"replayed booking", false, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(ctx context.Context, booking *model.Booking) (bool, *model.Booking, error) {
					return tt.created, existing, nil
				},
			}
			router := testRouter(t, svc, &mockConfirmer{}, tokens)

			body := `{"treatment":"Teeth Cleaning","date":"May 16, 2026","slot":"10:00 AM","patient":"jane@example.com","patientName":"Jane Doe"}`
			req := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}

			var resp struct {
				Data struct {
					Created bool           `json:"created"`
					Booking *model.Booking `json:"booking"`
				} `json:"data"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Data.Created != tt.wantCreated {
				t.Errorf("expected created=%v, got %v", tt.wantCreated, resp.Data.Created)
			}
			if resp.Data.Booking == nil || resp.Data.Booking.ID != existing.ID {
				t.Errorf("expected booking %s in response", existing.ID)
			}
		})
	}
}

func TestConfirmPayment(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	var gotBookingID string
	var gotTransaction string
	confirmer := &mockConfirmer{
		confirmFunc: func(ctx context.Context, bookingID string, payment *model.Payment) (*model.Booking, error) {
			gotBookingID = bookingID
			gotTransaction = payment.TransactionID
			return &model.Booking{ID: bookingID, Paid: true, TransactionID: payment.TransactionID}, nil
		},
	}
	router := testRouter(t, &mockBookingService{}, confirmer, tokens)

	body := `{"transactionId":"txn_1Nv0yZ2eZvKYlo2C","amount":8000}`
	req := httptest.NewRequest(http.MethodPatch, "/booking/64f0c2a9e4b0a1b2c3d4e5f6", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotBookingID != "64f0c2a9e4b0a1b2c3d4e5f6" {
		t.Errorf("expected booking id passed through, got %q", gotBookingID)
	}
	if gotTransaction != "txn_1Nv0yZ2eZvKYlo2C" {
		t.Errorf("expected transaction id decoded, got %q", gotTransaction)
	}
}
