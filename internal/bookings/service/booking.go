package service

import (
	"context"
	"errors"

	bookingserrors "docportal/internal/bookings/errors"
	"docportal/internal/bookings/repository"
	"docportal/internal/bookings/validator"
	"docportal/internal/notifications"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	// Create books a slot. The bool reports whether a new booking was
	// inserted; when a booking with the same (treatment, date, patient)
	// already exists, the existing booking is returned unchanged.
	Create(ctx context.Context, booking *model.Booking) (bool, *model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByPatient(ctx context.Context, patient string) ([]*model.Booking, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	validator  *validator.BookingValidator
	dispatcher notifications.Dispatcher
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	dispatcher notifications.Dispatcher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		validator:  validator,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (bool, *model.Booking, error) {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return false, nil, err
	}

	var created bool
	var result *model.Booking

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByKey(sessCtx, booking.Key())
		if err == nil {
			created = false
			result = existing
			return nil
		}
		if !errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.Internal("Failed to check for existing booking", err)
		}

		if err := s.repo.Insert(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrDuplicateKey) {
				// Lost the race to a concurrent create; the winner's
				// booking is the one to report.
				winner, findErr := s.repo.FindByKey(sessCtx, booking.Key())
				if findErr != nil {
					return apperrors.Internal("Failed to load concurrently created booking", findErr)
				}
				created = false
				result = winner
				return nil
			}
			return apperrors.Internal("Failed to create booking", err)
		}

		created = true
		result = booking
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"treatment", booking.Treatment,
			"date", booking.Date,
			"patient", booking.Patient,
			"error", err,
		)
		return false, nil, err
	}

	if !created {
		s.cfg.Log.Info("Booking already exists, returning existing",
			"id", result.ID,
			"treatment", result.Treatment,
			"date", result.Date,
			"patient", result.Patient,
		)
		return false, result, nil
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", result.ID,
		"treatment", result.Treatment,
		"date", result.Date,
		"slot", result.Slot,
		"patient", result.Patient,
	)
	s.dispatcher.BookingConfirmed(result)

	return true, result, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) ListByPatient(ctx context.Context, patient string) ([]*model.Booking, error) {
	patient = sanitizer.NormalizeEmail(patient)
	if patient == "" {
		return nil, apperrors.InvalidInput("Patient email cannot be empty")
	}

	bookings, err := s.repo.FindByPatient(ctx, patient)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for patient", "patient", patient, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Treatment = sanitizer.NormalizeLabel(b.Treatment)
	b.Date = sanitizer.TrimAndNormalize(b.Date)
	b.Slot = sanitizer.NormalizeLabel(b.Slot)
	b.Patient = sanitizer.NormalizeEmail(b.Patient)
	b.PatientName = sanitizer.NormalizeName(b.PatientName)
	b.Phone = sanitizer.TrimAndNormalize(b.Phone)
}

func (s *bookingService) validate(b *model.Booking) error {
	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"treatment", b.Treatment,
			"date", b.Date,
			"error", err,
		)
		return apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}
	return nil
}
