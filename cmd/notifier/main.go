package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"docportal/internal/notifications"
	"docportal/internal/notifications/mailer"
	"docportal/internal/notifications/worker"
	"docportal/pkg/config"
	"docportal/pkg/kafka"
	kafka_config "docportal/pkg/kafka/config"
	kafka_middleware "docportal/pkg/kafka/middleware"

	"github.com/joho/godotenv"
)

const ServiceName = "notifier"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting notification worker")

	mail := initMailer(cfg)
	w := worker.New(mail, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafka_config.Load(),
		notifications.TopicBookingEvents,
		notifications.ConsumerGroupNotifier,
		notifications.TopicBookingEventsDLQ,
		w.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notification worker stopped")
}

func initMailer(cfg *config.Config) mailer.Mailer {
	if cfg.MailjetPublicKey != "" && cfg.MailjetPrivateKey != "" {
		cfg.Log.Info("Using Mailjet mailer", "from", cfg.MailFromEmail)
		return mailer.NewMailjet(
			cfg.MailjetPublicKey,
			cfg.MailjetPrivateKey,
			cfg.MailFromEmail,
			cfg.MailFromName,
			cfg.Log,
		)
	}

	cfg.Log.Warn("Mailjet keys not configured, emails will be logged to console")
	return mailer.NewConsole(cfg.Log)
}
