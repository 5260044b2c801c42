package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"docportal/internal/health"
	"docportal/pkg/config"
	"docportal/pkg/contracts"
	"docportal/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg            *config.Config
	server         *http.Server
	healthHandler  http.Handler
	appHttpHandler http.Handler
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

func (a *Application) SetApp(appHandlers ...contracts.Handler) {
	a.setHealthHandler()
	a.setAppHandler(appHandlers)
	a.setAppServer()
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	healthHandler := health.NewHandler(a.cfg.Client.Mongo, a.cfg.Log)
	healthHandler.RegisterRoutes(healthRouter)

	var h http.Handler = healthRouter
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.healthHandler = h
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(appHandlers []contracts.Handler) {
	appRouter := httprouter.New()
	for _, handler := range appHandlers {
		handler.RegisterRoutes(appRouter)
	}

	var h http.Handler = appRouter
	h = middleware.RequestTimeout(a.cfg.RequestTimeout)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.appHttpHandler = h
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHttpHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Server stopped gracefully")
}
