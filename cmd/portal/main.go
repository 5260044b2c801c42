package main

import (
	availabilityhandler "docportal/internal/availability/handler"
	availabilityservice "docportal/internal/availability/service"
	bookingshandler "docportal/internal/bookings/handler"
	bookingsrepo "docportal/internal/bookings/repository"
	bookingsservice "docportal/internal/bookings/service"
	bookingsvalidator "docportal/internal/bookings/validator"
	cataloghandler "docportal/internal/catalog/handler"
	catalogrepo "docportal/internal/catalog/repository"
	doctorshandler "docportal/internal/doctors/handler"
	doctorsrepo "docportal/internal/doctors/repository"
	doctorsservice "docportal/internal/doctors/service"
	"docportal/internal/notifications"
	paymentshandler "docportal/internal/payments/handler"
	"docportal/internal/payments/intent"
	paymentsrepo "docportal/internal/payments/repository"
	paymentsservice "docportal/internal/payments/service"
	usershandler "docportal/internal/users/handler"
	usersrepo "docportal/internal/users/repository"
	usersservice "docportal/internal/users/service"
	"docportal/pkg/app"
	"docportal/pkg/auth"
	"docportal/pkg/config"
	"docportal/pkg/kafka"
	kafka_config "docportal/pkg/kafka/config"
	kafka_middleware "docportal/pkg/kafka/middleware"
	"docportal/pkg/middleware"

	"github.com/joho/godotenv"
)

const ServiceName = "portal"

func main() {
	_ = godotenv.Load()

	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Doctors Portal service")

	cfg.SetMongo()

	dispatcher := initDispatcher(cfg)
	defer func() {
		if err := dispatcher.Close(); err != nil {
			cfg.Log.Error("Failed to close event dispatcher", "error", err)
		}
	}()

	tokens := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.TokenTTL)

	userRepo := usersrepo.NewMongoUserRepository(cfg)
	userService := usersservice.NewUserService(userRepo, tokens, cfg)

	requireAuth := middleware.RequireAuth(tokens, cfg.Log)
	requireAdmin := middleware.RequireAdmin(tokens, userService.Role, cfg.Log)

	catalogRepo := catalogrepo.NewMongoServiceRepository(cfg)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	paymentRepo := paymentsrepo.NewMongoPaymentRepository(cfg)
	doctorRepo := doctorsrepo.NewMongoDoctorRepository(cfg)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		dispatcher,
		cfg,
	)
	availabilityService := availabilityservice.NewAvailabilityService(catalogRepo, bookingRepo, cfg)
	reconcileService := paymentsservice.NewReconcileService(paymentRepo, bookingRepo, dispatcher, cfg)
	doctorService := doctorsservice.NewDoctorService(doctorRepo, cfg)

	intents := intent.NewStripeCreator(cfg.StripeSecretKey, cfg.Log)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		availabilityhandler.NewAvailabilityHandler(availabilityService, cfg.Log),
		cataloghandler.NewCatalogHandler(catalogRepo, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, reconcileService, requireAuth, cfg.Log),
		paymentshandler.NewPaymentHandler(intents, requireAuth, cfg.Log),
		usershandler.NewUserHandler(userService, requireAuth, requireAdmin, cfg.Log),
		doctorshandler.NewDoctorHandler(doctorService, requireAdmin, cfg.Log),
	)
	serverApp.Run()
}

// initDispatcher wires the Kafka producer for booking lifecycle events.
// Kafka is best effort here: when no broker is reachable the publish fails
// inside the dispatcher goroutine and the request path is unaffected.
func initDispatcher(cfg *config.Config) notifications.Dispatcher {
	kafkaCfg := kafka_config.Load()

	producer, err := kafka.NewProducer(kafkaCfg, notifications.TopicBookingEvents, notifications.TopicBookingEventsDLQ)
	if err != nil {
		cfg.Log.Error("Failed to initialize Kafka producer, notifications disabled", "error", err)
		return notifications.NopDispatcher{}
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	return notifications.NewKafkaDispatcher(producer, cfg.Log, cfg.RequestTimeout)
}
