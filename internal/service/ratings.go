package service

import (
	"context"
	"errors"

	"github.com/fobfinder/fobfinder-go/internal/fob"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/repository"
)

var ErrRatingNotFound = errors.New("rating not found")

// RatingService handles rating business logic. Ownership of existing ratings
// is enforced by the pipeline gates before updates and deletes reach here.
type RatingService struct {
	ratings RatingStore
	fobs    FobStore
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratings RatingStore, fobs FobStore) *RatingService {
	return &RatingService{ratings: ratings, fobs: fobs}
}

// Create validates and stores a rating against an existing fob. The details
// payload must match the parent fob's variant; the rating ID inherits that
// variant in its prefix.
func (s *RatingService) Create(ctx context.Context, userID, fobID string, req model.CreateRatingRequest) (model.RatingResponse, error) {
	variant := fob.VariantOf(fobID)
	if variant == fob.Unknown {
		return model.RatingResponse{}, ErrFobNotFound
	}

	if _, err := s.fobs.GetByID(ctx, fobID); err != nil {
		if errors.Is(err, repository.ErrFobNotFound) {
			return model.RatingResponse{}, ErrFobNotFound
		}
		return model.RatingResponse{}, err
	}

	if err := fob.ValidateDetails(variant, req.Details); err != nil {
		return model.RatingResponse{}, err
	}

	id, err := fob.MintRatingID(variant)
	if err != nil {
		return model.RatingResponse{}, err
	}

	rt := &model.Rating{
		ID:      id,
		FobID:   fobID,
		UserID:  userID,
		Comment: req.Comment,
		Details: req.Details,
	}

	if err := s.ratings.Create(ctx, rt); err != nil {
		return model.RatingResponse{}, err
	}

	return model.RatingToResponse(rt), nil
}

// Update replaces a rating's comment and details. The caller supplies the
// rating already resolved by the existence gate; details are re-validated
// against the variant carried by the rating's own ID.
func (s *RatingService) Update(ctx context.Context, rt *model.Rating, req model.UpdateRatingRequest) (model.RatingResponse, error) {
	variant := fob.RatingVariantOf(rt.ID)

	if err := fob.ValidateDetails(variant, req.Details); err != nil {
		return model.RatingResponse{}, err
	}

	rt.Comment = req.Comment
	rt.Details = req.Details

	if err := s.ratings.Update(ctx, rt); err != nil {
		return model.RatingResponse{}, err
	}

	return model.RatingToResponse(rt), nil
}

// Delete removes a rating.
func (s *RatingService) Delete(ctx context.Context, id string) error {
	err := s.ratings.Delete(ctx, id)
	if errors.Is(err, repository.ErrRatingNotFound) {
		return ErrRatingNotFound
	}
	return err
}

// ListByFob returns all ratings for a fob, newest first.
func (s *RatingService) ListByFob(ctx context.Context, fobID string) ([]model.RatingResponse, error) {
	if fob.VariantOf(fobID) == fob.Unknown {
		return nil, ErrFobNotFound
	}

	ratings, err := s.ratings.ListByFob(ctx, fobID)
	if err != nil {
		return nil, err
	}

	result := make([]model.RatingResponse, len(ratings))
	for i := range ratings {
		result[i] = model.RatingToResponse(&ratings[i])
	}

	return result, nil
}
