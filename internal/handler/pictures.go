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

// PictureHandler handles HTTP requests for fob pictures.
type PictureHandler struct {
	service *service.PictureService
}

// NewPictureHandler creates a new PictureHandler.
func NewPictureHandler(svc *service.PictureService) *PictureHandler {
	return &PictureHandler{service: svc}
}

// Create handles POST /api/v1/fobs/{fob_id}/pictures requests. A rejected URL
// produces the exact plain-text body clients match on.
func (h *PictureHandler) Create() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		identity, ok := gate.IdentityFromContext(r.Context())
		if !ok {
			slog.Error("picture create handler ran without identity in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		var req model.CreatePictureRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		resp, err := h.service.Create(r.Context(), identity.ID, chi.URLParam(r, "fob_id"), req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidPictureURL):
				return pipeline.Terminal(http.StatusBadRequest, service.InvalidPictureURLMessage)
			case errors.Is(err, service.ErrFobNotFound):
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			default:
				slog.Error("picture create failed", "error", err)
				return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
			}
		}

		return pipeline.Terminal(http.StatusCreated, resp)
	}
}

// List handles GET /api/v1/fobs/{fob_id}/pictures requests.
func (h *PictureHandler) List() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		resp, err := h.service.ListByFob(r.Context(), chi.URLParam(r, "fob_id"))
		if err != nil {
			if errors.Is(err, service.ErrFobNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("picture list failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// UploadURL handles POST /api/v1/fobs/{fob_id}/pictures/upload-url requests.
// It hands out a presigned PUT URL and the storage key to register afterwards.
func (h *PictureHandler) UploadURL() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		resp, err := h.service.CreateUploadURL(r.Context(), chi.URLParam(r, "fob_id"))
		if err != nil {
			if errors.Is(err, service.ErrFobNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("upload url failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusOK, resp)
	}
}

// UpdateStatus handles PUT /api/v1/pictures/{picture_id}/status requests.
// Runs after the existence and ownership gates.
func (h *PictureHandler) UpdateStatus() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		var req model.UpdatePictureStatusRequest
		if res := decodeBody(r, &req); res != nil {
			return *res
		}

		if err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "picture_id"), req.Pending); err != nil {
			if errors.Is(err, service.ErrPictureNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("picture status update failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusNoContent, nil)
	}
}

// Delete handles DELETE /api/v1/pictures/{picture_id} requests.
func (h *PictureHandler) Delete() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		if err := h.service.Delete(r.Context(), chi.URLParam(r, "picture_id")); err != nil {
			if errors.Is(err, service.ErrPictureNotFound) {
				return pipeline.Terminal(http.StatusNotFound, gate.MsgNotFound)
			}
			slog.Error("picture delete failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorResponse(gate.MsgInternal))
		}

		return pipeline.Terminal(http.StatusNoContent, nil)
	}
}
