package worker

import (
	"context"
	"fmt"

	"docportal/internal/notifications"
	"docportal/internal/notifications/mailer"
	"docportal/pkg/kafka"
	"docportal/pkg/logger"
)

// Worker turns booking lifecycle events into emails. It runs as the handler
// of a kafka consumer; send failures are returned so the consumer's retry
// and DLQ machinery deals with them.
type Worker struct {
	mail mailer.Mailer
	log  *logger.Logger
}

func New(mail mailer.Mailer, log *logger.Logger) *Worker {
	return &Worker{
		mail: mail,
		log:  log,
	}
}

func (w *Worker) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.GetEventType()

	switch eventType {
	case notifications.EventTypeBookingConfirmed:
		var event notifications.BookingConfirmedEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("malformed booking event", err)
		}
		return w.mail.Send(ctx, bookingEmail(event))

	case notifications.EventTypePaymentConfirmed:
		var event notifications.PaymentConfirmedEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("malformed payment event", err)
		}
		return w.mail.Send(ctx, paymentEmail(event))

	default:
		w.log.Warn("Skipping unknown event type", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}
}

func bookingEmail(e notifications.BookingConfirmedEvent) mailer.Email {
	return mailer.Email{
		ToEmail:  e.Patient,
		ToName:   e.PatientName,
		Subject:  fmt.Sprintf("You have booked an appointment on %s", e.Date),
		TextPart: fmt.Sprintf("You have booked an appointment on %s, treatment is %s", e.Date, e.Treatment),
		HTMLPart: fmt.Sprintf(
			"<h2>Hello %s, you have an appointment on %s, treatment is %s</h2><h5>Please add this time to your calendar: %s</h5>",
			e.PatientName, e.Date, e.Treatment, e.Slot,
		),
	}
}

func paymentEmail(e notifications.PaymentConfirmedEvent) mailer.Email {
	return mailer.Email{
		ToEmail:  e.Patient,
		ToName:   e.PatientName,
		Subject:  fmt.Sprintf("Payment succeeded for your appointment on %s", e.Date),
		TextPart: fmt.Sprintf("Payment succeeded for your appointment on %s, treatment is %s", e.Date, e.Treatment),
		HTMLPart: fmt.Sprintf(
			"<h2>Hello %s, your appointment on %s at %s is confirmed.</h2><li>Transaction id: %s</li><li>Amount: %d</li>",
			e.PatientName, e.Date, e.Slot, e.TransactionID, e.Amount,
		),
	}
}
