package service

import (
	"context"
	"errors"
	"testing"
	"time"

	userserrors "docportal/internal/users/errors"
	"docportal/pkg/auth"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

type mockUserRepository struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	upsertFunc      func(ctx context.Context, user *model.User) error
	setRoleFunc     func(ctx context.Context, email string, role model.Role) error
	findAllFunc     func(ctx context.Context) ([]*model.User, error)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) Upsert(ctx context.Context, user *model.User) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) SetRole(ctx context.Context, email string, role model.Role) error {
	if m.setRoleFunc != nil {
		return m.setRoleFunc(ctx, email, role)
	}
	return nil
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.User{}, nil
}

func newTestService(repo *mockUserRepository) UserService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(repo, tokens, cfg)
}

func TestUpsert_ReturnsUserAndToken(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{Email: email, Name: "Jane Doe", Role: model.RolePatient}, nil
		},
	}
	svc := newTestService(repo)

	user, token, err := svc.Upsert(context.Background(), " Jane@Example.com ", "Jane Doe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if token == "" {
		t.Error("expected a signed token")
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Email != "jane@example.com" {
		t.Errorf("expected token subject jane@example.com, got %q", claims.Email)
	}
}

func TestUpsert_EmptyEmail(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	_, _, err := svc.Upsert(context.Background(), "  ", "Jane Doe")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected %s error, got %v", apperrors.CodeInvalidInput, err)
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
		err  error
		want bool
	}{
		{"admin user", &model.User{Email: "a@example.com", Role: model.RoleAdmin}, nil, true},
		{"patient user", &model.User{Email: "p@example.com", Role: model.RolePatient}, nil, false},
		{"unknown user", nil, userserrors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{
				findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
					return tt.user, tt.err
				},
			}
			admin, err := newTestService(repo).IsAdmin(context.Background(), "someone@example.com")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if admin != tt.want {
				t.Errorf("expected admin=%v, got %v", tt.want, admin)
			}
		})
	}
}

func TestPromote(t *testing.T) {
	var gotRole model.Role
	repo := &mockUserRepository{
		setRoleFunc: func(ctx context.Context, email string, role model.Role) error {
			gotRole = role
			return nil
		},
	}
	if err := newTestService(repo).Promote(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRole != model.RoleAdmin {
		t.Errorf("expected role admin, got %q", gotRole)
	}
}

func TestPromote_UnknownUser(t *testing.T) {
	repo := &mockUserRepository{
		setRoleFunc: func(ctx context.Context, email string, role model.Role) error {
			return userserrors.ErrNotFound
		},
	}
	err := newTestService(repo).Promote(context.Background(), "ghost@example.com")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected %s error, got %v", apperrors.CodeNotFound, err)
	}
}

func TestRole_UnknownUserDefaultsToPatient(t *testing.T) {
	role, err := newTestService(&mockUserRepository{}).Role(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if role != model.RolePatient {
		t.Errorf("expected patient role for unknown user, got %q", role)
	}
}

func TestRole_LookupFailureSurfaces(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return nil, errors.New("connection reset")
		},
	}
	_, err := newTestService(repo).Role(context.Background(), "jane@example.com")
	if err == nil {
		t.Fatal("expected lookup failure to surface")
	}
}
