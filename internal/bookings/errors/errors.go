package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrDuplicateKey means the unique (treatment, date, patient) index
	// rejected an insert: the booking already exists.
	ErrDuplicateKey = errors.New("booking already exists for this treatment, date and patient")
)
