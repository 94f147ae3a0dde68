package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/fobfinder/fobfinder-go/internal/fob"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/repository"
)

// InvalidPictureURLMessage is the exact client-visible message for a rejected
// picture URL.
const InvalidPictureURLMessage = "Invalid picture URL!"

var (
	ErrInvalidPictureURL = errors.New("invalid picture url")
	ErrPictureNotFound   = errors.New("picture not found")
)

// PictureService handles picture business logic. Ownership of existing
// pictures is enforced by the pipeline gates.
type PictureService struct {
	pictures PictureStore
	fobs     FobStore
	signer   URLSigner
}

// NewPictureService creates a new PictureService.
func NewPictureService(pictures PictureStore, fobs FobStore, signer URLSigner) *PictureService {
	return &PictureService{pictures: pictures, fobs: fobs, signer: signer}
}

func validPictureURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *PictureService) resolveFobVariant(ctx context.Context, fobID string) (fob.Variant, error) {
	variant := fob.VariantOf(fobID)
	if variant == fob.Unknown {
		return fob.Unknown, ErrFobNotFound
	}

	if _, err := s.fobs.GetByID(ctx, fobID); err != nil {
		if errors.Is(err, repository.ErrFobNotFound) {
			return fob.Unknown, ErrFobNotFound
		}
		return fob.Unknown, err
	}

	return variant, nil
}

// Create registers a picture against an existing fob, either by external URL
// or by the storage key handed out with an upload URL. New pictures start
// pending moderation.
func (s *PictureService) Create(ctx context.Context, userID, fobID string, req model.CreatePictureRequest) (model.PictureResponse, error) {
	variant, err := s.resolveFobVariant(ctx, fobID)
	if err != nil {
		return model.PictureResponse{}, err
	}

	if req.StorageKey == "" && !validPictureURL(req.URL) {
		return model.PictureResponse{}, ErrInvalidPictureURL
	}

	id, err := fob.MintPictureID(variant)
	if err != nil {
		return model.PictureResponse{}, err
	}

	p := &model.Picture{
		ID:         id,
		FobID:      fobID,
		UserID:     userID,
		URL:        req.URL,
		StorageKey: req.StorageKey,
		Pending:    true,
	}

	if err := s.pictures.Create(ctx, p); err != nil {
		return model.PictureResponse{}, err
	}

	return s.pictureToResponse(ctx, p), nil
}

// CreateUploadURL mints a picture storage key under the fob and returns a
// presigned PUT URL for it. The picture row is created when the client
// registers the key afterwards.
func (s *PictureService) CreateUploadURL(ctx context.Context, fobID string) (model.UploadURLResponse, error) {
	variant, err := s.resolveFobVariant(ctx, fobID)
	if err != nil {
		return model.UploadURLResponse{}, err
	}

	id, err := fob.MintPictureID(variant)
	if err != nil {
		return model.UploadURLResponse{}, err
	}
	key := "fobs/" + fobID + "/" + id

	uploadURL, err := s.signer.PresignPut(ctx, key)
	if err != nil {
		return model.UploadURLResponse{}, err
	}

	return model.UploadURLResponse{UploadURL: uploadURL, StorageKey: key}, nil
}

// UpdateStatus changes a picture's moderation flag.
func (s *PictureService) UpdateStatus(ctx context.Context, id string, pending bool) error {
	err := s.pictures.UpdateStatus(ctx, id, pending)
	if errors.Is(err, repository.ErrPictureNotFound) {
		return ErrPictureNotFound
	}
	return err
}

// Delete removes a picture. Hard delete; the stored object, if any, is left
// to bucket lifecycle rules.
func (s *PictureService) Delete(ctx context.Context, id string) error {
	err := s.pictures.Delete(ctx, id)
	if errors.Is(err, repository.ErrPictureNotFound) {
		return ErrPictureNotFound
	}
	return err
}

// ListByFob returns all pictures for a fob, newest first, resolving presigned
// download links for stored objects.
func (s *PictureService) ListByFob(ctx context.Context, fobID string) ([]model.PictureResponse, error) {
	if fob.VariantOf(fobID) == fob.Unknown {
		return nil, ErrFobNotFound
	}

	pictures, err := s.pictures.ListByFob(ctx, fobID)
	if err != nil {
		return nil, err
	}

	result := make([]model.PictureResponse, len(pictures))
	for i := range pictures {
		result[i] = s.pictureToResponse(ctx, &pictures[i])
	}

	return result, nil
}

func (s *PictureService) pictureToResponse(ctx context.Context, p *model.Picture) model.PictureResponse {
	resolved := p.URL
	if resolved == "" && p.StorageKey != "" && s.signer != nil {
		if u, err := s.signer.PresignGet(ctx, p.StorageKey); err == nil {
			resolved = u
		}
	}

	return model.PictureResponse{
		ID:        p.ID,
		FobID:     p.FobID,
		UserID:    p.UserID,
		URL:       resolved,
		Pending:   p.Pending,
		CreatedAt: p.CreatedAt,
	}
}
