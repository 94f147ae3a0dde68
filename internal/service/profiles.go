package service

import (
	"context"
	"errors"

	"github.com/fobfinder/fobfinder-go/internal/crypto"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// ProfileService handles public profile reads and owner-gated updates.
type ProfileService struct {
	users  UserStore
	hasher *crypto.Hasher
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users UserStore, hasher *crypto.Hasher) *ProfileService {
	return &ProfileService{users: users, hasher: hasher}
}

// Get retrieves a public profile by username.
func (s *ProfileService) Get(ctx context.Context, username string) (model.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return model.UserToResponse(user), nil
}

// Update applies profile changes to the already-resolved user. Ownership is
// enforced by the pipeline gate; a non-empty password is re-hashed with a
// fresh salt.
func (s *ProfileService) Update(ctx context.Context, user *model.User, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return model.UserResponse{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.UserResponse{}, ErrUserTaken
		}
		return model.UserResponse{}, err
	}

	return model.UserToResponse(user), nil
}
