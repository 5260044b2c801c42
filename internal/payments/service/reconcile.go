package service

import (
	"context"
	"errors"

	bookingserrors "docportal/internal/bookings/errors"
	bookingsrepo "docportal/internal/bookings/repository"
	"docportal/internal/notifications"
	paymentserrors "docportal/internal/payments/errors"
	"docportal/internal/payments/repository"
	"docportal/pkg/config"
	apperrors "docportal/pkg/errors"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"
)

type ReconcileService interface {
	// Confirm logs the payment and marks the booking paid. Both steps are
	// idempotent, so a retried confirmation converges to the same state.
	Confirm(ctx context.Context, bookingID string, payment *model.Payment) (*model.Booking, error)
}

type reconcileService struct {
	payments   repository.PaymentRepository
	bookings   bookingsrepo.BookingRepository
	dispatcher notifications.Dispatcher
	cfg        *config.Config
}

func NewReconcileService(
	payments repository.PaymentRepository,
	bookings bookingsrepo.BookingRepository,
	dispatcher notifications.Dispatcher,
	cfg *config.Config,
) ReconcileService {
	return &reconcileService{
		payments:   payments,
		bookings:   bookings,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

func (s *reconcileService) Confirm(ctx context.Context, bookingID string, payment *model.Payment) (*model.Booking, error) {
	payment.TransactionID = sanitizer.TrimAndNormalize(payment.TransactionID)
	if payment.TransactionID == "" {
		return nil, apperrors.InvalidInput("Transaction ID cannot be empty")
	}
	if payment.Amount <= 0 {
		return nil, apperrors.InvalidInput("Payment amount must be positive")
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to load booking", err)
	}

	payment.BookingID = booking.ID
	payment.Treatment = booking.Treatment
	payment.Date = booking.Date
	payment.Slot = booking.Slot
	payment.Patient = booking.Patient
	payment.PatientName = booking.PatientName

	recorded := false
	if err := s.payments.Record(ctx, payment); err != nil {
		if !errors.Is(err, paymentserrors.ErrDuplicateTransaction) {
			// Nothing persisted yet; the whole confirmation can be retried.
			s.cfg.Log.Error("Failed to record payment",
				"booking_id", bookingID,
				"transaction_id", payment.TransactionID,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to record payment", err)
		}
		s.cfg.Log.Info("Payment already recorded, continuing reconciliation",
			"booking_id", bookingID,
			"transaction_id", payment.TransactionID,
		)
	} else {
		recorded = true
	}

	if err := s.bookings.MarkPaid(ctx, booking.ID, payment.TransactionID); err != nil {
		// The payment row exists but the booking still reads unpaid. This
		// partial state must surface distinctly so the caller retries the
		// confirmation instead of charging again.
		s.cfg.Log.Error("Payment recorded but booking update failed",
			"booking_id", bookingID,
			"transaction_id", payment.TransactionID,
			"error", err,
		)
		return nil, apperrors.ReconciliationInconsistent(
			"Payment recorded but booking could not be marked paid", err)
	}

	booking.Paid = true
	booking.TransactionID = payment.TransactionID

	s.cfg.Log.Info("Payment reconciled",
		"booking_id", booking.ID,
		"transaction_id", payment.TransactionID,
		"amount", payment.Amount,
	)

	if recorded {
		s.dispatcher.PaymentConfirmed(booking, payment)
	}

	return booking, nil
}
