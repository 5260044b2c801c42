package handler

import (
	"encoding/json"
	"net/http"

	"docportal/internal/payments/intent"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	intents     intent.Creator
	requireAuth func(httprouter.Handle) httprouter.Handle
	log         *logger.Logger
}

func NewPaymentHandler(
	intents intent.Creator,
	requireAuth func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		intents:     intents,
		requireAuth: requireAuth,
		log:         log,
	}
}

type createIntentRequest struct {
	Price int64 `json:"price"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	clientSecret, err := h.intents.Create(r.Context(), req.Price)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, createIntentResponse{ClientSecret: clientSecret})
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/create-payment-intent", h.requireAuth(h.CreateIntent))
}
