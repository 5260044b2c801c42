package service

import (
	"context"
	"errors"

	userserrors "docportal/internal/users/errors"
	"docportal/internal/users/repository"
	"docportal/pkg/auth"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type UserService interface {
	// Upsert stores the profile and returns it with a fresh signed token.
	// Login and registration share this path.
	Upsert(ctx context.Context, email string, name string) (*model.User, string, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	Promote(ctx context.Context, email string) error
	List(ctx context.Context) ([]*model.User, error)
	// Role resolves the stored role of an authenticated caller. Unknown
	// users default to patient.
	Role(ctx context.Context, email string) (model.Role, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	cfg    *config.Config
}

func NewUserService(repo repository.UserRepository, tokens *auth.TokenManager, cfg *config.Config) UserService {
	return &userService{
		repo:   repo,
		tokens: tokens,
		cfg:    cfg,
	}
}

func (s *userService) Upsert(ctx context.Context, email string, name string) (*model.User, string, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, "", apperrors.InvalidInput("Email cannot be empty")
	}

	user := &model.User{
		Email: email,
		Name:  sanitizer.NormalizeName(name),
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		s.cfg.Log.Error("Failed to upsert user", "email", email, "error", err)
		return nil, "", apperrors.Internal("Failed to store user", err)
	}

	stored, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to load user after upsert", "email", email, "error", err)
		return nil, "", apperrors.Internal("Failed to load user", err)
	}

	token, err := s.tokens.Sign(email)
	if err != nil {
		s.cfg.Log.Error("Failed to sign token", "email", email, "error", err)
		return nil, "", apperrors.Internal("Failed to issue access token", err)
	}

	s.cfg.Log.Info("User upserted", "email", email, "role", stored.Role)
	return stored, token, nil
}

func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.Role(ctx, email)
	if err != nil {
		return false, err
	}
	return role == model.RoleAdmin, nil
}

func (s *userService) Promote(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return apperrors.InvalidInput("Email cannot be empty")
	}

	if err := s.repo.SetRole(ctx, email, model.RoleAdmin); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", email)
		}
		s.cfg.Log.Error("Failed to promote user", "email", email, "error", err)
		return apperrors.Internal("Failed to update user role", err)
	}

	s.cfg.Log.Info("User promoted to admin", "email", email)
	return nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}

	if users == nil {
		users = []*model.User{}
	}
	return users, nil
}

func (s *userService) Role(ctx context.Context, email string) (model.Role, error) {
	user, err := s.repo.FindByEmail(ctx, sanitizer.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return model.RolePatient, nil
		}
		return "", err
	}
	return user.Role, nil
}
