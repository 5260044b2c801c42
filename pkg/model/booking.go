package model

import (
	"time"
)

// Booking identity is the (treatment, date, patient) triple; a unique index
// enforces it so concurrent creates for the same key cannot both insert.
type Booking struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Treatment     string    `json:"treatment" bson:"treatment" validate:"required,min=2,max=100"`
	Date          string    `json:"date" bson:"date" validate:"required,min=4,max=40"`
	Slot          string    `json:"slot" bson:"slot" validate:"required,min=1,max=60"`
	Patient       string    `json:"patient" bson:"patient" validate:"required,email"`
	PatientName   string    `json:"patientName" bson:"patient_name" validate:"required,min=2,max=100"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,max=20"`
	Paid          bool      `json:"paid" bson:"paid"`
	TransactionID string    `json:"transactionId,omitempty" bson:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingKey is the identity of a booking as seen by the duplicate check.
type BookingKey struct {
	Treatment string
	Date      string
	Patient   string
}

func (b *Booking) Key() BookingKey {
	return BookingKey{
		Treatment: b.Treatment,
		Date:      b.Date,
		Patient:   b.Patient,
	}
}
