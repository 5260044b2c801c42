package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"docportal/internal/bookings/service"
	"docportal/pkg/auth"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/middleware"
	"docportal/pkg/model"
	"docportal/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

// PaymentConfirmer records a payment against a booking and returns the
// booking in its reconciled state.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, bookingID string, payment *model.Payment) (*model.Booking, error)
}

type BookingHandler struct {
	service     service.BookingService
	payments    PaymentConfirmer
	requireAuth func(httprouter.Handle) httprouter.Handle
	log         *logger.Logger
}

func NewBookingHandler(
	service service.BookingService,
	payments PaymentConfirmer,
	requireAuth func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *BookingHandler {
	return &BookingHandler{
		service:     service,
		payments:    payments,
		requireAuth: requireAuth,
		log:         log,
	}
}

type createBookingResponse struct {
	Created bool           `json:"created"`
	Booking *model.Booking `json:"booking"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	created, result, err := h.service.Create(r.Context(), &booking)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := createBookingResponse{Created: created, Booking: result}
	if created {
		httputil.WriteCreated(w, resp)
		return
	}
	httputil.WriteSuccess(w, resp)
}

// ListByPatient only serves the caller's own bookings: the patient query
// parameter must match the authenticated email.
func (h *BookingHandler) ListByPatient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	patient := sanitizer.NormalizeEmail(r.URL.Query().Get("patient"))
	if patient == "" {
		httputil.WriteError(w, apperrors.InvalidInput("patient query parameter is required"))
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, apperrors.Unauthorized(middleware.MsgUnauthorized))
		return
	}
	if claims.Email != patient {
		httputil.WriteError(w, apperrors.Forbidden(middleware.MsgForbidden))
		return
	}

	bookings, err := h.service.ListByPatient(r.Context(), patient)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, bookings)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

// ConfirmPayment applies a payment to the booking and marks it paid.
func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payment model.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	booking, err := h.payments.Confirm(r.Context(), ps.ByName("id"), &payment)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, booking)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/booking", h.Create)
	router.GET("/booking", h.requireAuth(h.ListByPatient))
	router.GET("/booking/:id", h.requireAuth(h.GetByID))
	router.PATCH("/booking/:id", h.ConfirmPayment)
}
