package service

import (
	"context"

	bookingsrepo "docportal/internal/bookings/repository"
	catalogrepo "docportal/internal/catalog/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type AvailabilityService interface {
	// Compute returns every catalog service with its slot template reduced
	// to the slots not yet booked on the given date. A pure read: nothing
	// in the store changes.
	Compute(ctx context.Context, date string) ([]*model.ServiceAvailability, error)
}

type availabilityService struct {
	catalog  catalogrepo.ServiceRepository
	bookings bookingsrepo.BookingRepository
	cfg      *config.Config
}

func NewAvailabilityService(
	catalog catalogrepo.ServiceRepository,
	bookings bookingsrepo.BookingRepository,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		catalog:  catalog,
		bookings: bookings,
		cfg:      cfg,
	}
}

func (s *availabilityService) Compute(ctx context.Context, date string) ([]*model.ServiceAvailability, error) {
	date = sanitizer.TrimAndNormalize(date)

	services, err := s.catalog.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load service catalog", "error", err)
		return nil, apperrors.Internal("Failed to load service catalog", err)
	}

	bookings, err := s.bookings.FindByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for date", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	// Booked slots per treatment name. Slot labels compare verbatim against
	// the catalog template.
	booked := make(map[string]map[string]struct{})
	for _, b := range bookings {
		slots, ok := booked[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			booked[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	result := make([]*model.ServiceAvailability, 0, len(services))
	for _, svc := range services {
		taken := booked[svc.Name]

		open := make([]string, 0, len(svc.Slots))
		for _, slot := range svc.Slots {
			if _, isTaken := taken[slot]; !isTaken {
				open = append(open, slot)
			}
		}

		result = append(result, &model.ServiceAvailability{
			ID:    svc.ID,
			Name:  svc.Name,
			Slots: open,
			Price: svc.Price,
		})
	}

	return result, nil
}
