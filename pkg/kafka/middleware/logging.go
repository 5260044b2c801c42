package kafka_middleware

import (
	"context"
	"time"

	"docportal/pkg/kafka"
	"docportal/pkg/logger"
)

// LoggingProducerMiddleware logs message publishing operations
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		if err != nil {
			log.Error("Failed to publish message",
				"topic", msg.Topic,
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
		} else {
			log.Info("Published message",
				"topic", msg.Topic,
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}

		return err
	}
}

// LoggingConsumerMiddleware logs message consumption operations
func LoggingConsumerMiddleware(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		if err != nil {
			log.Error("Failed to process message",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
		} else {
			log.Info("Processed message",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"key", msg.Key,
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}

		return err
	}
}
