package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fobfinder/fobfinder-go/internal/crypto"
	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/token"
)

// Fast hash parameters for tests only.
func testHasher() *crypto.Hasher {
	return crypto.NewHasher(crypto.HashParams{
		Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
}

func newTestAuthService(users UserStore) *AuthService {
	return NewAuthService(users, token.NewCodec("test-secret"), testHasher(), 90*time.Minute, 7*24*time.Hour)
}

var signupReq = model.SignupRequest{
	Username: "ada",
	Email:    "ada@example.com",
	Password: "password123",
}

func TestSignupMissingFields(t *testing.T) {
	svc := newTestAuthService(newMemUsers())

	tests := []struct {
		name string
		req  model.SignupRequest
		want error
	}{
		{"empty username", model.SignupRequest{Email: "a@b.c", Password: "x"}, ErrUsernameRequired},
		{"empty email", model.SignupRequest{Username: "a", Password: "x"}, ErrEmailRequired},
		{"empty password", model.SignupRequest{Username: "a", Email: "a@b.c"}, ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Signup() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSignupAndLogin(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	resp, err := svc.Signup(context.Background(), signupReq)
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("Signup() returned empty token pair")
	}
	if resp.User.Username != "ada" {
		t.Errorf("Signup() username = %q, want %q", resp.User.Username, "ada")
	}

	login, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("Login() returned a different user than Signup()")
	}
}

func TestSignupDuplicate(t *testing.T) {
	svc := newTestAuthService(newMemUsers())

	if _, err := svc.Signup(context.Background(), signupReq); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
	if _, err := svc.Signup(context.Background(), signupReq); !errors.Is(err, ErrUserTaken) {
		t.Errorf("Signup() error = %v, want ErrUserTaken", err)
	}
}

func TestLoginUnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newMemUsers())

	if _, err := svc.Signup(context.Background(), signupReq); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	_, errUnknown := svc.Login(context.Background(), model.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	_, errWrong := svc.Login(context.Background(), model.LoginRequest{
		Email: "ada@example.com", Password: "wrong",
	})

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrong)
	}
}

func TestRefresh(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	resp, err := svc.Signup(context.Background(), signupReq)
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), model.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh() unexpected error: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("Refresh() returned empty token pair")
	}
	if refreshed.User.ID != resp.User.ID {
		t.Error("Refresh() returned a different user")
	}
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := newTestAuthService(newMemUsers())

	_, err := svc.Refresh(context.Background(), model.RefreshRequest{RefreshToken: "garbage"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Refresh() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshDeletedUser(t *testing.T) {
	users := newMemUsers()
	svc := newTestAuthService(users)

	resp, err := svc.Signup(context.Background(), signupReq)
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	// Account deleted after issuance: a still-valid refresh token must be
	// rejected on the re-check.
	delete(users.users, resp.User.ID)

	_, err = svc.Refresh(context.Background(), model.RefreshRequest{RefreshToken: resp.RefreshToken})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Refresh() error = %v, want ErrInvalidCredentials", err)
	}
}
