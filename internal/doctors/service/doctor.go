package service

import (
	"context"
	"errors"

	doctorserrors "docportal/internal/doctors/errors"
	"docportal/internal/doctors/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type DoctorService interface {
	Add(ctx context.Context, doctor *model.Doctor) error
	List(ctx context.Context) ([]*model.Doctor, error)
	Remove(ctx context.Context, email string) error
}

type doctorService struct {
	repo     repository.DoctorRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewDoctorService(repo repository.DoctorRepository, cfg *config.Config) DoctorService {
	return &doctorService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *doctorService) Add(ctx context.Context, doctor *model.Doctor) error {
	doctor.Name = sanitizer.NormalizeName(doctor.Name)
	doctor.Email = sanitizer.NormalizeEmail(doctor.Email)
	doctor.Specialty = sanitizer.NormalizeLabel(doctor.Specialty)

	if err := s.validate.Struct(doctor); err != nil {
		s.cfg.Log.Warn("Doctor validation failed", "email", doctor.Email, "error", err)
		return apperrors.Validation("Invalid doctor input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Insert(ctx, doctor); err != nil {
		if errors.Is(err, doctorserrors.ErrDuplicateEmail) {
			return apperrors.Conflict("Doctor with this email already exists")
		}
		s.cfg.Log.Error("Failed to add doctor", "email", doctor.Email, "error", err)
		return apperrors.Internal("Failed to add doctor", err)
	}

	s.cfg.Log.Info("Doctor added", "id", doctor.ID, "email", doctor.Email)
	return nil
}

func (s *doctorService) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list doctors", "error", err)
		return nil, apperrors.Internal("Failed to retrieve doctors", err)
	}

	if doctors == nil {
		doctors = []*model.Doctor{}
	}
	return doctors, nil
}

func (s *doctorService) Remove(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return apperrors.InvalidInput("Email cannot be empty")
	}

	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Doctor", email)
		}
		s.cfg.Log.Error("Failed to remove doctor", "email", email, "error", err)
		return apperrors.Internal("Failed to remove doctor", err)
	}

	s.cfg.Log.Info("Doctor removed", "email", email)
	return nil
}
