package middleware

import (
	"context"
	"net/http"
	"strings"

	"docportal/pkg/auth"
	apperrors "docportal/pkg/errors"
	httputil "docportal/pkg/http"
	"docportal/pkg/logger"
	"docportal/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	MsgUnauthorized = "UnAuthorized Access"
	MsgForbidden    = "Forbidden Access"
)

// RoleLookup resolves the role of an authenticated caller. The role lives in
// the user collection, not in the token, so admin revocation is immediate.
type RoleLookup func(ctx context.Context, email string) (model.Role, error)

// RequireAuth verifies the bearer token and attaches the decoded claims to
// the request context. A missing credential is 401, a bad one is 403.
func RequireAuth(tokens *auth.TokenManager, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, err := authenticate(tokens, r)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			r = r.WithContext(auth.ContextWithClaims(r.Context(), claims))
			next(w, r, ps)
		}
	}
}

// RequireAdmin is RequireAuth plus an admin-role check against the store.
func RequireAdmin(tokens *auth.TokenManager, lookup RoleLookup, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, err := authenticate(tokens, r)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			role, err := lookup(r.Context(), claims.Email)
			if err != nil {
				log.Error("Role lookup failed", "email", claims.Email, "error", err)
				httputil.WriteError(w, apperrors.Internal("Failed to verify caller role", err))
				return
			}
			if role != model.RoleAdmin {
				log.Warn("Admin operation rejected", "email", claims.Email, "role", role, "path", r.URL.Path)
				httputil.WriteError(w, apperrors.Forbidden("Forbidden request"))
				return
			}

			r = r.WithContext(auth.ContextWithClaims(r.Context(), claims))
			next(w, r, ps)
		}
	}
}

func authenticate(tokens *auth.TokenManager, r *http.Request) (*auth.Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, apperrors.Unauthorized(MsgUnauthorized)
	}

	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == header || tokenStr == "" {
		return nil, apperrors.Unauthorized(MsgUnauthorized)
	}

	claims, err := tokens.Verify(tokenStr)
	if err != nil {
		return nil, apperrors.Forbidden(MsgForbidden)
	}
	return claims, nil
}
