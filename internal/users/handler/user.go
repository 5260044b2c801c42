package handler

import (
	"encoding/json"
	"net/http"

	"docportal/internal/users/service"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service      service.UserService
	requireAuth  func(httprouter.Handle) httprouter.Handle
	requireAdmin func(httprouter.Handle) httprouter.Handle
	log          *logger.Logger
}

func NewUserHandler(
	service service.UserService,
	requireAuth func(httprouter.Handle) httprouter.Handle,
	requireAdmin func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *UserHandler {
	return &UserHandler{
		service:      service,
		requireAuth:  requireAuth,
		requireAdmin: requireAdmin,
		log:          log,
	}
}

type upsertUserRequest struct {
	Name string `json:"name"`
}

type upsertUserResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}

type isAdminResponse struct {
	Admin bool `json:"admin"`
}

// Upsert stores the profile for the email in the path and returns a signed
// access token. The frontend calls this on every login.
func (h *UserHandler) Upsert(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req upsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	user, token, err := h.service.Upsert(r.Context(), ps.ByName("email"), req.Name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, upsertUserResponse{User: user, AccessToken: token})
}

func (h *UserHandler) IsAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	admin, err := h.service.IsAdmin(r.Context(), ps.ByName("email"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, isAdminResponse{Admin: admin})
}

func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Promote(r.Context(), ps.ByName("email")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, users)
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/user/:email", h.Upsert)
	router.GET("/admin/:email", h.IsAdmin)
	router.PUT("/user/:email/admin", h.requireAdmin(h.Promote))
	router.GET("/all-user", h.requireAuth(h.List))
}
