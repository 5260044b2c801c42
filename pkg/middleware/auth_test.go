package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"docportal/pkg/auth"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

func okHandler(called *bool) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuth_MissingCredential(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	called := false
	handle := RequireAuth(tokens, testLogger())(okHandler(&called))

	r := httptest.NewRequest(http.MethodGet, "/booking", nil)
	w := httptest.NewRecorder()
	handle(w, r, nil)

	if called {
		t.Errorf("handler should not run without a credential")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	called := false
	handle := RequireAuth(tokens, testLogger())(okHandler(&called))

	r := httptest.NewRequest(http.MethodGet, "/booking", nil)
	r.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	handle(w, r, nil)

	if called {
		t.Errorf("handler should not run with an invalid credential")
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireAuth_ValidTokenAttachesClaims(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	token, err := tokens.Sign("a@x.com")
	if err != nil {
		t.Fatalf("Sign() unexpected error: %v", err)
	}

	var gotEmail string
	handle := RequireAuth(tokens, testLogger())(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			gotEmail = claims.Email
		}
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/booking", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handle(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotEmail != "a@x.com" {
		t.Errorf("expected claims email a@x.com in context, got %q", gotEmail)
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	tests := []struct {
		name       string
		role       model.Role
		wantStatus int
		wantCalled bool
	}{
		{name: "admin allowed", role: model.RoleAdmin, wantStatus: http.StatusOK, wantCalled: true},
		{name: "patient forbidden", role: model.RolePatient, wantStatus: http.StatusForbidden, wantCalled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(ctx context.Context, email string) (model.Role, error) {
				return tt.role, nil
			}

			called := false
			handle := RequireAdmin(tokens, lookup, testLogger())(okHandler(&called))

			token, err := tokens.Sign("admin@x.com")
			if err != nil {
				t.Fatalf("Sign() unexpected error: %v", err)
			}

			r := httptest.NewRequest(http.MethodGet, "/doctors", nil)
			r.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handle(w, r, nil)

			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
