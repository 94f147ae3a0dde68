package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fobfinder/fobfinder-go/internal/gate"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/pipeline"
	"github.com/fobfinder/fobfinder-go/internal/service"
)

// FobHandler handles HTTP requests for fobs.
type FobHandler struct {
	service *service.FobService
}

// NewFobHandler creates a new FobHandler.
func NewFobHandler(svc *service.FobService) *FobHandler {
	return &FobHandler{service: svc}
}

// Create handles POST /api/v1/fobs requests.
func (h *FobHandler) Create() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		identity, ok := gate.IdentityFromContext(r.Context())
		if !ok {
			slog.Error("fob create handler ran without identity in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		var req model.CreateFobRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Create(r.Context(), identity.ID, req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUnknownFobType),
				errors.Is(err, service.ErrInvalidFobInfo),
				errors.Is(err, service.ErrNameRequired),
				errors.Is(err, service.ErrInvalidCoords):
				return pipeline.Terminal(http.StatusBadRequest, errorResponse(err.Error()))
			default:
				slog.Error("fob create failed", "error", err)
				return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
			}
		}

		return pipeline.Terminal(http.StatusCreated, resp)
	}
}

// Get handles GET /api/v1/fobs/{fob_id} requests.
func (h *FobHandler) Get() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		resp, err := h.service.Get(r.Context(), chi.URLParam(r, "fob_id"))
		if err != nil {
			if errors.Is(err, service.ErrFobNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("fob get failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// Update handles PUT /api/v1/fobs/{fob_id} requests. Any authenticated user
// may amend a fob; the directory is collaboratively maintained.
func (h *FobHandler) Update() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		var req model.UpdateFobRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Update(r.Context(), chi.URLParam(r, "fob_id"), req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrFobNotFound):
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			case errors.Is(err, service.ErrInvalidFobInfo),
				errors.Is(err, service.ErrNameRequired),
				errors.Is(err, service.ErrInvalidCoords):
				return pipeline.Terminal(http.StatusBadRequest, errorResponse(err.Error()))
			default:
				slog.Error("fob update failed", "error", err)
				return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
			}
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// Delete handles DELETE /api/v1/fobs/{fob_id} requests. Runs after the
// existence and ownership gates.
func (h *FobHandler) Delete() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		if err := h.service.Delete(r.Context(), chi.URLParam(r, "fob_id")); err != nil {
			if errors.Is(err, service.ErrFobNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("fob delete failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusNoContent, nil)
	}
}

// Nearby handles GET /api/v1/fobs requests with lat, lng and radius query
// parameters.
func (h *FobHandler) Nearby() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		q := r.URL.Query()

		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
		if errLat != nil || errLng != nil {
			return pipeline.Terminal(http.StatusBadRequest, errorResponse("lat and lng query parameters are required"))
		}

		radiusKm := 5.0
		if raw := q.Get("radius"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return pipeline.Terminal(http.StatusBadRequest, errorResponse("invalid radius"))
			}
			radiusKm = parsed
		}

		resp, err := h.service.Nearby(r.Context(), lat, lng, radiusKm)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCoords) {
				return pipeline.Terminal(http.StatusBadRequest, errorResponse(err.Error()))
			}
			slog.Error("nearby search failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}
