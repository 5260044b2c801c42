package health

import (
	"context"
	"net/http"
	"time"

	httputil "docportal/pkg/http"
	"docportal/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

type Response struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type Handler struct {
	mongoClient *mongo.Client
	log         *logger.Logger
}

func NewHandler(mongoClient *mongo.Client, log *logger.Logger) *Handler {
	return &Handler{
		mongoClient: mongoClient,
		log:         log,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteJSON(w, http.StatusOK, Response{Status: "ok"})
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, Response{
			Status:   "unavailable",
			Database: "error",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, Response{
		Status:   "ready",
		Database: "ok",
	})
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
