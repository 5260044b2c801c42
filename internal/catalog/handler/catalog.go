package handler

import (
	"net/http"

	"docportal/internal/catalog/repository"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	repo repository.ServiceRepository
	log  *logger.Logger
}

func NewCatalogHandler(repo repository.ServiceRepository, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: repo,
		log:  log,
	}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	services, err := h.repo.ListNames(r.Context())
	if err != nil {
		h.log.Error("Failed to list services", "error", err)
		httputil.WriteError(w, apperrors.Internal("Failed to retrieve services", err))
		return
	}

	httputil.WriteSuccess(w, services)
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/services", h.List)
}
