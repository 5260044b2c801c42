package notifications

import (
	"context"
	"time"

	"docportal/pkg/kafka"
	"docportal/pkg/logger"
	"docportal/pkg/model"
)

// Dispatcher fans booking lifecycle events out to interested consumers.
// Implementations must never block or fail the calling workflow: delivery
// is best effort and errors are logged, not returned.
type Dispatcher interface {
	BookingConfirmed(booking *model.Booking)
	PaymentConfirmed(booking *model.Booking, payment *model.Payment)
	Close() error
}

type KafkaDispatcher struct {
	producer       *kafka.Producer
	log            *logger.Logger
	publishTimeout time.Duration
}

func NewKafkaDispatcher(producer *kafka.Producer, log *logger.Logger, publishTimeout time.Duration) *KafkaDispatcher {
	if publishTimeout <= 0 {
		publishTimeout = 10 * time.Second
	}
	return &KafkaDispatcher{
		producer:       producer,
		log:            log,
		publishTimeout: publishTimeout,
	}
}

func (d *KafkaDispatcher) BookingConfirmed(booking *model.Booking) {
	event := NewBookingConfirmedEvent(booking)
	d.publish(EventTypeBookingConfirmed, booking.Patient, event)
}

func (d *KafkaDispatcher) PaymentConfirmed(booking *model.Booking, payment *model.Payment) {
	event := NewPaymentConfirmedEvent(booking, payment)
	d.publish(EventTypePaymentConfirmed, booking.Patient, event)
}

// publish runs asynchronously; the booking or payment has already been
// committed, so a delivery failure must not propagate back to the caller.
func (d *KafkaDispatcher) publish(eventType string, key string, payload interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
		defer cancel()

		msg := kafka.NewMessage().
			WithKey(key).
			WithValue(payload).
			WithEventType(eventType).
			WithSource("docportal").
			Build()

		if err := d.producer.Publish(ctx, msg); err != nil {
			d.log.Error("Failed to publish notification event",
				"event_type", eventType,
				"key", key,
				"error", err,
			)
			return
		}

		d.log.Info("Notification event published",
			"event_type", eventType,
			"event_id", msg.GetEventID(),
		)
	}()
}

func (d *KafkaDispatcher) Close() error {
	return d.producer.Close()
}

// NopDispatcher drops all events. Used when the broker is not configured
// and in tests.
type NopDispatcher struct{}

func (NopDispatcher) BookingConfirmed(*model.Booking)                 {}
func (NopDispatcher) PaymentConfirmed(*model.Booking, *model.Payment) {}
func (NopDispatcher) Close() error                                    { return nil }
