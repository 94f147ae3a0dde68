package gate

import (
	"context"

	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/token"
)

type contextKey string

const (
	claimsKey   contextKey = "claims"
	identityKey contextKey = "identity"
	ratingKey   contextKey = "rating"
	pictureKey  contextKey = "picture"
	profileKey  contextKey = "profile"
	fobKey      contextKey = "fob"
)

// WithIdentity attaches both the token-embedded snapshot and the freshly
// loaded persisted user to the context.
func WithIdentity(ctx context.Context, claims *token.Claims, user *model.User) context.Context {
	ctx = context.WithValue(ctx, claimsKey, claims)
	return context.WithValue(ctx, identityKey, user)
}

// IdentityFromContext extracts the persisted authenticated user.
func IdentityFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(identityKey).(*model.User)
	return u, ok
}

// ClaimsFromContext extracts the token-embedded identity snapshot.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*token.Claims)
	return c, ok
}

// RatingFromContext extracts the rating resolved by RatingExists.
func RatingFromContext(ctx context.Context) (*model.Rating, bool) {
	rt, ok := ctx.Value(ratingKey).(*model.Rating)
	return rt, ok
}

// PictureFromContext extracts the picture resolved by PictureExists.
func PictureFromContext(ctx context.Context) (*model.Picture, bool) {
	p, ok := ctx.Value(pictureKey).(*model.Picture)
	return p, ok
}

// ProfileFromContext extracts the user resolved by ProfileExists.
func ProfileFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(profileKey).(*model.User)
	return u, ok
}

// FobFromContext extracts the fob resolved by FobExists.
func FobFromContext(ctx context.Context) (*model.Fob, bool) {
	f, ok := ctx.Value(fobKey).(*model.Fob)
	return f, ok
}
