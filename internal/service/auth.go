package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fobfinder/fobfinder-go/internal/crypto"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/repository"
	"github.com/fobfinder/fobfinder-go/internal/token"
)

var (
	// ErrInvalidCredentials covers unknown email, wrong password and
	// invalid refresh tokens alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameRequired   = errors.New("username is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrUserTaken          = errors.New("username or email already taken")
)

// AuthService handles signup, login and token refresh.
type AuthService struct {
	users      UserStore
	codec      *token.Codec
	hasher     *crypto.Hasher
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, codec *token.Codec, hasher *crypto.Hasher, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		codec:      codec,
		hasher:     hasher,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) issuePair(user *model.User) (access, refresh string, err error) {
	id := token.Identity{ID: user.ID, Username: user.Username, Email: user.Email}

	access, err = s.codec.Issue(id, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.codec.Issue(id, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Signup creates a new user account and returns a token pair.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	if req.Username == "" {
		return model.AuthResponse{}, ErrUsernameRequired
	}
	if req.Email == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.AuthResponse{}, ErrUserTaken
		}
		return model.AuthResponse{}, err
	}

	access, refresh, err := s.issuePair(user)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         model.UserToResponse(user),
	}, nil
}

// Login authenticates a user by email and password and returns a token pair.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		// A corrupt stored hash is an internal failure, not a wrong password.
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	access, refresh, err := s.issuePair(user)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         model.UserToResponse(user),
	}, nil
}

// Refresh verifies a refresh token, re-checks the user still exists and
// returns a fresh pair. Tokens are stateless; validity is cryptographic plus
// the storage re-check.
func (s *AuthService) Refresh(ctx context.Context, req model.RefreshRequest) (model.AuthResponse, error) {
	claims, err := s.codec.Verify(req.RefreshToken)
	if err != nil {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	access, refresh, err := s.issuePair(user)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         model.UserToResponse(user),
	}, nil
}
