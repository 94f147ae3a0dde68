package service

import (
	"context"

	"github.com/fobfinder/fobfinder-go/internal/model"
)

// Store interfaces consumed by the services, satisfied by the MySQL
// repositories and by in-memory fakes in tests.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type FobStore interface {
	Create(ctx context.Context, f *model.Fob) error
	GetByID(ctx context.Context, id string) (*model.Fob, error)
	Update(ctx context.Context, f *model.Fob) error
	Delete(ctx context.Context, id string) error
	ListNearby(ctx context.Context, lat, lng, radiusKm float64) ([]model.Fob, error)
}

type RatingStore interface {
	Create(ctx context.Context, rt *model.Rating) error
	GetByID(ctx context.Context, id string) (*model.Rating, error)
	Update(ctx context.Context, rt *model.Rating) error
	Delete(ctx context.Context, id string) error
	ListByFob(ctx context.Context, fobID string) ([]model.Rating, error)
}

type PictureStore interface {
	Create(ctx context.Context, p *model.Picture) error
	GetByID(ctx context.Context, id string) (*model.Picture, error)
	UpdateStatus(ctx context.Context, id string, pending bool) error
	Delete(ctx context.Context, id string) error
	ListByFob(ctx context.Context, fobID string) ([]model.Picture, error)
}

// URLSigner produces short-lived upload and download URLs for stored picture
// objects.
type URLSigner interface {
	PresignPut(ctx context.Context, key string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}
