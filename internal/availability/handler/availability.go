package handler

import (
	"net/http"

	"docportal/internal/availability/service"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		httputil.WriteError(w, apperrors.InvalidInput("date query parameter is required"))
		return
	}

	availability, err := h.service.Compute(r.Context(), date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, availability)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/available", h.Get)
}
