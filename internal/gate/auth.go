// Package gate holds the composable authorization stages of the request
// pipeline: identity resolution, existence checks, and ownership checks.
// Every failure they detect is decided locally and converted to a terminal
// response; nothing propagates as an error to outer layers.
package gate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/pipeline"
	"github.com/fobfinder/fobfinder-go/internal/repository"
	"github.com/fobfinder/fobfinder-go/internal/token"
)

// Exact client-visible bodies. The coarse categories deliberately hide the
// precise reason: a missing header, a bad signature, an expired token and a
// deleted account all read the same to the caller.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgForbidden          = "Forbidden"
	MsgNotFound           = "Not found"
	MsgInternal           = "internal server error"
)

// UserFinder loads a persisted user for identity resolution.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticate resolves the bearer credential into an authenticated identity.
// The token snapshot is never trusted on its own: the user is re-fetched from
// storage on every request so deleted accounts holding a still-valid token
// are rejected. A storage round-trip per request is the price of that.
func Authenticate(codec *token.Codec, users UserFinder) pipeline.Stage {
	return func(r *http.Request) pipeline.Result {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			return pipeline.Terminal(http.StatusUnauthorized, MsgInvalidCredentials)
		}

		raw, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || raw == "" {
			return pipeline.Terminal(http.StatusUnauthorized, MsgInvalidCredentials)
		}

		claims, err := codec.Verify(raw)
		if err != nil {
			// Expired and invalid differ only in the log line.
			if errors.Is(err, token.ErrExpired) {
				slog.Debug("rejected expired token", "path", r.URL.Path)
			} else {
				slog.Debug("rejected invalid token", "path", r.URL.Path)
			}
			return pipeline.Terminal(http.StatusUnauthorized, MsgInvalidCredentials)
		}

		user, err := users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				// Stale identity: the token verifies but the account is gone.
				slog.Info("rejected token for deleted user", "user_id", claims.UserID)
				return pipeline.Terminal(http.StatusUnauthorized, MsgInvalidCredentials)
			}
			slog.Error("identity lookup failed", "error", err)
			return pipeline.Terminal(http.StatusInternalServerError, errorBody(MsgInternal))
		}

		return pipeline.Continue(WithIdentity(r.Context(), claims, user))
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
