package errors

import "errors"

var (
	ErrNotFound       = errors.New("doctor not found")
	ErrDuplicateEmail = errors.New("doctor with this email already exists")
)
