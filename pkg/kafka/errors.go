package kafka

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProducerClosed indicates the producer has been closed
	ErrProducerClosed = errors.New("kafka producer is closed")

	// ErrConsumerClosed indicates the consumer has been closed
	ErrConsumerClosed = errors.New("kafka consumer is closed")

	// ErrInvalidMessage indicates the message is invalid
	ErrInvalidMessage = errors.New("invalid message")

	// ErrEmptyKey indicates the message key is empty
	ErrEmptyKey = errors.New("message key cannot be empty")

	// ErrEmptyValue indicates the message value is empty
	ErrEmptyValue = errors.New("message value cannot be empty")
)

// ErrorType classifies failures for the retry/DLQ decision
type ErrorType int

const (
	// ErrorTypeUnknown represents an unknown error type
	ErrorTypeUnknown ErrorType = iota

	// ErrorTypeTransient represents a transient error (network issues, timeouts)
	ErrorTypeTransient

	// ErrorTypePermanent represents a permanent error (schema mismatch, invalid data)
	ErrorTypePermanent
)

// KafkaError wraps errors with additional context
type KafkaError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *KafkaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *KafkaError) Unwrap() error {
	return e.Err
}

// NewTransientError creates a new transient error
func NewTransientError(message string, err error) *KafkaError {
	return &KafkaError{Type: ErrorTypeTransient, Message: message, Err: err}
}

// NewPermanentError creates a new permanent error
func NewPermanentError(message string, err error) *KafkaError {
	return &KafkaError{Type: ErrorTypePermanent, Message: message, Err: err}
}

var transientPatterns = []string{
	"connection refused",
	"timeout",
	"deadline exceeded",
	"no such host",
	"network is unreachable",
	"broken pipe",
	"connection reset",
	"i/o timeout",
	"temporary failure",
}

// ClassifyError classifies an error as transient or permanent
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var kafkaErr *KafkaError
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Type
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return ErrorTypeTransient
		}
	}

	// Default to permanent if we can't classify it
	return ErrorTypePermanent
}

// ShouldRetry determines if an error should be retried
func ShouldRetry(err error, currentRetries, maxRetries int) bool {
	if err == nil {
		return false
	}

	if currentRetries >= maxRetries {
		return false
	}

	return ClassifyError(err) == ErrorTypeTransient
}
