package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fobfinder/fobfinder-go/internal/fob"
	"github.com/fobfinder/fobfinder-go/internal/gate"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/pipeline"
	"github.com/fobfinder/fobfinder-go/internal/service"
)

// RatingHandler handles HTTP requests for ratings.
type RatingHandler struct {
	service *service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(svc *service.RatingService) *RatingHandler {
	return &RatingHandler{service: svc}
}

// Create handles POST /api/v1/fobs/{fob_id}/ratings requests. Rejected
// details produce the exact plain-text body clients match on.
func (h *RatingHandler) Create() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		identity, ok := gate.IdentityFromContext(r.Context())
		if !ok {
			slog.Error("rating create handler ran without identity in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		var req model.CreateRatingRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Create(r.Context(), identity.ID, chi.URLParam(r, "fob_id"), req)
		if err != nil {
			switch {
			case errors.Is(err, fob.ErrInvalidDetails):
				return pipeline.Terminal(http.StatusBadRequest, fob.InvalidDetailsMessage)
			case errors.Is(err, service.ErrFobNotFound):
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			default:
				slog.Error("rating create failed", "error", err)
				return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
			}
		}

		return pipeline.Terminal(http.StatusCreated, resp)
	}
}

// List handles GET /api/v1/fobs/{fob_id}/ratings requests.
func (h *RatingHandler) List() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		resp, err := h.service.ListByFob(r.Context(), chi.URLParam(r, "fob_id"))
		if err != nil {
			if errors.Is(err, service.ErrFobNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("rating list failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// Get handles GET /api/v1/ratings/{rating_id} requests. Runs after the
// existence gate, which stashed the rating in the context.
func (h *RatingHandler) Get() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		rt, ok := gate.RatingFromContext(r.Context())
		if !ok {
			slog.Error("rating get handler ran without rating in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, model.RatingToResponse(rt))
	}
}

// Update handles PUT /api/v1/ratings/{rating_id} requests. Runs after the
// existence and ownership gates.
func (h *RatingHandler) Update() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		rt, ok := gate.RatingFromContext(r.Context())
		if !ok {
			slog.Error("rating update handler ran without rating in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		var req model.UpdateRatingRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Update(r.Context(), rt, req)
		if err != nil {
			if errors.Is(err, fob.ErrInvalidDetails) {
				return pipeline.Terminal(http.StatusBadRequest, fob.InvalidDetailsMessage)
			}
			slog.Error("rating update failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// Delete handles DELETE /api/v1/ratings/{rating_id} requests.
func (h *RatingHandler) Delete() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		if err := h.service.Delete(r.Context(), chi.URLParam(r, "rating_id")); err != nil {
			if errors.Is(err, service.ErrRatingNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("rating delete failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusNoContent, nil)
	}
}
