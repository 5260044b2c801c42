package model

import "time"

// Payment is an append-only log entry, one per completed payment event.
// TransactionID is unique so a retried reconciliation cannot log the same
// event twice. The booking fields are echoed for the confirmation message.
type Payment struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	TransactionID string    `json:"transactionId" bson:"transaction_id" validate:"required,min=4,max=120"`
	Amount        int64     `json:"amount" bson:"amount" validate:"required,min=1"`
	BookingID     string    `json:"bookingId,omitempty" bson:"booking_id,omitempty" validate:"omitempty,mongodb"`
	Treatment     string    `json:"treatment,omitempty" bson:"treatment,omitempty"`
	Date          string    `json:"date,omitempty" bson:"date,omitempty"`
	Slot          string    `json:"slot,omitempty" bson:"slot,omitempty"`
	Patient       string    `json:"patient,omitempty" bson:"patient,omitempty" validate:"omitempty,email"`
	PatientName   string    `json:"patientName,omitempty" bson:"patient_name,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
