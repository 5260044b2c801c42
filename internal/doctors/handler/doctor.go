package handler

import (
	"encoding/json"
	"net/http"

	"docportal/internal/doctors/service"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type DoctorHandler struct {
	service      service.DoctorService
	requireAdmin func(httprouter.Handle) httprouter.Handle
	log          *logger.Logger
}

func NewDoctorHandler(
	service service.DoctorService,
	requireAdmin func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *DoctorHandler {
	return &DoctorHandler{
		service:      service,
		requireAdmin: requireAdmin,
		log:          log,
	}
}

func (h *DoctorHandler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var doctor model.Doctor
	if err := json.NewDecoder(r.Body).Decode(&doctor); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Add(r.Context(), &doctor); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, doctor)
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doctors, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, doctors)
}

func (h *DoctorHandler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Remove(r.Context(), ps.ByName("email")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *DoctorHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/doctors", h.requireAdmin(h.List))
	router.POST("/doctor", h.requireAdmin(h.Add))
	router.DELETE("/doctor/:email", h.requireAdmin(h.Remove))
}
