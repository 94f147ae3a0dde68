package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fobfinder/fobfinder-go/internal/gate"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/pipeline"
	"github.com/fobfinder/fobfinder-go/internal/service"
)

// ProfileHandler handles HTTP requests for user profiles.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Get handles GET /api/v1/profiles/{username} requests.
func (h *ProfileHandler) Get() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		resp, err := h.service.Get(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("profile get failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// Update handles PUT /api/v1/profiles/{username} requests. Runs after the
// existence and ownership gates, which resolved the profile into the context.
func (h *ProfileHandler) Update() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		user, ok := gate.ProfileFromContext(r.Context())
		if !ok {
			slog.Error("profile update handler ran without profile in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		var req model.UpdateProfileRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Update(r.Context(), user, req)
		if err != nil {
			if errors.Is(err, service.ErrUserTaken) {
				return pipeline.Terminal(http.StatusConflict, errorResponse(err.Error()))
			}
			slog.Error("profile update failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}
