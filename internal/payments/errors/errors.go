package errors

import "errors"

var (
	ErrNotFound             = errors.New("payment not found")
	ErrDuplicateTransaction = errors.New("payment with this transaction id already recorded")
)
