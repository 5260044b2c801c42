package notifications

import (
	"time"

	"docportal/pkg/model"
)

const (
	EventTypeBookingConfirmed = "booking.confirmed"
	EventTypePaymentConfirmed = "payment.confirmed"

	TopicBookingEvents    = "docportal.booking-events"
	TopicBookingEventsDLQ = "docportal.booking-events.dlq"
	ConsumerGroupNotifier = "docportal-notifier"
)

// BookingConfirmedEvent is published after a booking is created. Keyed by
// the patient email so a patient's events stay ordered on one partition.
type BookingConfirmedEvent struct {
	BookingID   string    `json:"booking_id"`
	Treatment   string    `json:"treatment"`
	Date        string    `json:"date"`
	Slot        string    `json:"slot"`
	Patient     string    `json:"patient"`
	PatientName string    `json:"patient_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type PaymentConfirmedEvent struct {
	BookingID     string    `json:"booking_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Treatment     string    `json:"treatment"`
	Date          string    `json:"date"`
	Slot          string    `json:"slot"`
	Patient       string    `json:"patient"`
	PatientName   string    `json:"patient_name"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingConfirmedEvent(b *model.Booking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:   b.ID,
		Treatment:   b.Treatment,
		Date:        b.Date,
		Slot:        b.Slot,
		Patient:     b.Patient,
		PatientName: b.PatientName,
		OccurredAt:  time.Now().UTC(),
	}
}

func NewPaymentConfirmedEvent(b *model.Booking, p *model.Payment) PaymentConfirmedEvent {
	return PaymentConfirmedEvent{
		BookingID:     b.ID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Treatment:     b.Treatment,
		Date:          b.Date,
		Slot:          b.Slot,
		Patient:       b.Patient,
		PatientName:   b.PatientName,
		OccurredAt:    time.Now().UTC(),
	}
}
