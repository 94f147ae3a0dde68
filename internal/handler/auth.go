package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fobfinder/fobfinder-go/internal/gate"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/pipeline"
	"github.com/fobfinder/fobfinder-go/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Signup handles POST /api/v1/auth/signup requests.
func (h *AuthHandler) Signup() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		var req model.SignupRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Signup(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUsernameRequired),
				errors.Is(err, service.ErrEmailRequired),
				errors.Is(err, service.ErrPasswordRequired):
				return pipeline.Terminal(http.StatusBadRequest, errorResponse(err.Error()))
			case errors.Is(err, service.ErrUserTaken):
				return pipeline.Terminal(http.StatusConflict, errorResponse(err.Error()))
			default:
				slog.Error("signup failed", "error", err)
				return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
			}
		}

		return pipeline.Terminal(http.StatusCreated, resp)
	}
}

// Login handles POST /api/v1/auth/login requests. Failed credentials produce
// the same verbatim body as a rejected token elsewhere in the API.
func (h *AuthHandler) Login() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		var req model.LoginRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Login(r.Context(), req)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return pipeline.Terminal(http.StatusUnauthorized, gate.MsgInvalidCredentials)
			}
			slog.Error("login failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// Refresh handles POST /api/v1/auth/refresh requests.
func (h *AuthHandler) Refresh() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		var req model.RefreshRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Refresh(r.Context(), req)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return pipeline.Terminal(http.StatusUnauthorized, gate.MsgInvalidCredentials)
			}
			slog.Error("token refresh failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// Me handles GET /api/v1/auth/me requests. It runs after Authenticate, which
// has already resolved the caller from storage.
func (h *AuthHandler) Me() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		user, ok := gate.IdentityFromContext(r.Context())
		if !ok {
			slog.Error("me handler ran without identity in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, model.UserToResponse(user))
	}
}
