package gate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fobfinder/fobfinder-go/internal/fob"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/pipeline"
	"github.com/fobfinder/fobfinder-go/internal/repository"
)

// RatingFinder loads a rating for the existence gate.
type RatingFinder interface {
	GetByID(ctx context.Context, id string) (*model.Rating, error)
}

// PictureFinder loads a picture for the existence gate.
type PictureFinder interface {
	GetByID(ctx context.Context, id string) (*model.Picture, error)
}

// UsernameFinder loads a user by username for the profile existence gate.
type UsernameFinder interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// RatingExists resolves the path-referenced rating before any ownership
// check. An ID that does not carry a rating prefix fails closed as not
// found, never defaulting to a variant.
func RatingExists(ratings RatingFinder) pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		id := chi.URLParam(r, "rating_id")
		if fob.RatingVariantOf(id) == fob.Unknown {
			return pipeline.Terminal(http.StatusNotFound, MsgNotFound)
		}

		rt, err := ratings.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return pipeline.Terminal(http.StatusNotFound, MsgNotFound)
			}
			slog.Error("rating lookup failed", "rating_id", id, "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		return pipeline.Continue(context.WithValue(r.Context(), ratingKey, rt))
	}
}

// RatingOwner permits only the rating's creator past this stage. It assumes
// RatingExists and Authenticate already ran; a pipeline wired without them is
// a programming error surfaced as a 500.
func RatingOwner() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		identity, ok := IdentityFromContext(r.Context())
		rt, ok2 := RatingFromContext(r.Context())
		if !ok || !ok2 {
			slog.Error("rating ownership gate ran without identity or rating in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		if rt.UserID != identity.ID {
			return pipeline.Terminal(http.StatusForbidden, MsgForbidden)
		}

		return pipeline.Continue(r.Context())
	}
}

// PictureExists resolves the path-referenced picture before any ownership check.
func PictureExists(pictures PictureFinder) pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		id := chi.URLParam(r, "picture_id")
		if fob.PictureVariantOf(id) == fob.Unknown {
			return pipeline.Terminal(http.StatusNotFound, MsgNotFound)
		}

		p, err := pictures.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrPictureNotFound) {
				return pipeline.Terminal(http.StatusNotFound, MsgNotFound)
			}
			slog.Error("picture lookup failed", "picture_id", id, "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		return pipeline.Continue(context.WithValue(r.Context(), pictureKey, p))
	}
}

// PictureOwner permits only the picture's uploader past this stage.
func PictureOwner() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		identity, ok := IdentityFromContext(r.Context())
		p, ok2 := PictureFromContext(r.Context())
		if !ok || !ok2 {
			slog.Error("picture ownership gate ran without identity or picture in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		if p.UserID != identity.ID {
			return pipeline.Terminal(http.StatusForbidden, MsgForbidden)
		}

		return pipeline.Continue(r.Context())
	}
}

// ProfileExists resolves the path-referenced username before any ownership check.
func ProfileExists(users UsernameFinder) pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		username := chi.URLParam(r, "username")
		if username == "" {
			return pipeline.Terminal(http.StatusNotFound, MsgNotFound)
		}

		u, err := users.GetByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return pipeline.Terminal(http.StatusNotFound, MsgNotFound)
			}
			slog.Error("profile lookup failed", "username", username, "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		return pipeline.Continue(context.WithValue(r.Context(), profileKey, u))
	}
}

// ProfileOwner permits a user to touch only their own profile: the path
// username must match the authenticated username.
func ProfileOwner() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			slog.Error("profile ownership gate ran without identity in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		if chi.URLParam(r, "username") != identity.Username {
			return pipeline.Terminal(http.StatusForbidden, MsgForbidden)
		}

		return pipeline.Continue(r.Context())
	}
}

// FobOwner permits only the fob's creator past this stage. The target fob is
// loaded by the handler-side existence resolution in FobExists.
func FobOwner() pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		identity, ok := IdentityFromContext(r.Context())
		f, ok2 := FobFromContext(r.Context())
		if !ok || !ok2 {
			slog.Error("fob ownership gate ran without identity or fob in context")
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		if f.OwnerID != identity.ID {
			return pipeline.Terminal(http.StatusForbidden, MsgForbidden)
		}

		return pipeline.Continue(r.Context())
	}
}

// FobFinder loads a fob for the existence gate.
type FobFinder interface {
	GetByID(ctx context.Context, id string) (*model.Fob, error)
}

// FobExists resolves the path-referenced fob. An ID without a known variant
// prefix fails closed as not found.
func FobExists(fobs FobFinder) pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		id := chi.URLParam(r, "fob_id")
		if fob.VariantOf(id) == fob.Unknown {
			return pipeline.Terminal(http.StatusNotFound, MsgNotFound)
		}

		f, err := fobs.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrFobNotFound) {
				return pipeline.Terminal(http.StatusNotFound, MsgNotFound)
			}
			slog.Error("fob lookup failed", "fob_id", id, "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		return pipeline.Continue(context.WithValue(r.Context(), fobKey, f))
	}
}
