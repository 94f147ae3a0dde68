package gate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fobfinder/fobfinder-go/internal/model"
	"github.com/fobfinder/fobfinder-go/internal/pipeline"
	"github.com/fobfinder/fobfinder-go/internal/repository"
	"github.com/fobfinder/fobfinder-go/internal/token"
)

type fakeUsers struct {
	byID       map[string]*model.User
	byUsername map[string]*model.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*model.User{}, byUsername: map[string]*model.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byUsername[u.Username] = u
	}
	return f
}

var testUser = &model.User{
	ID:       "9f8e7d6c-1111-2222-3333-444455556666",
	Username: "ada",
	Email:    "ada@example.com",
}

func runStage(t *testing.T, stage pipeline.Stage, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	pipeline.Run(w, r, stage, func(r *http.Request) pipeline.Result {
		return pipeline.Terminal(http.StatusOK, map[string]string{"status": "ok"})
	})
	return w
}

func TestAuthenticateNoHeader(t *testing.T) {
	codec := token.NewCodec("test-secret")
	stage := Authenticate(codec, newFakeUsers(testUser))

	w := runStage(t, stage, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w.Body.String() != "Invalid credentials" {
		t.Errorf("body = %q, want %q", w.Body.String(), "Invalid credentials")
	}
}

func TestAuthenticateBadFormat(t *testing.T) {
	codec := token.NewCodec("test-secret")
	stage := Authenticate(codec, newFakeUsers(testUser))

	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", header)

		w := runStage(t, stage, r)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
		if w.Body.String() != MsgInvalidCredentials {
			t.Errorf("header %q: body = %q", header, w.Body.String())
		}
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	codec := token.NewCodec("test-secret")
	stage := Authenticate(codec, newFakeUsers(testUser))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")

	w := runStage(t, stage, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	codec := token.NewCodec("test-secret")
	stage := Authenticate(codec, newFakeUsers(testUser))

	tok, err := codec.Issue(token.Identity{ID: testUser.ID, Username: testUser.Username, Email: testUser.Email}, time.Millisecond)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)

	w := runStage(t, stage, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w.Body.String() != MsgInvalidCredentials {
		t.Errorf("body = %q, want %q", w.Body.String(), MsgInvalidCredentials)
	}
}

func TestAuthenticateStaleIdentity(t *testing.T) {
	// Token verifies but the user no longer exists in storage: a deleted
	// account holding a still-valid token must be rejected.
	codec := token.NewCodec("test-secret")
	stage := Authenticate(codec, newFakeUsers()) // empty storage

	tok, err := codec.Issue(token.Identity{ID: testUser.ID, Username: testUser.Username, Email: testUser.Email}, time.Hour)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)

	w := runStage(t, stage, r)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if w.Body.String() != MsgInvalidCredentials {
		t.Errorf("body = %q, want %q", w.Body.String(), MsgInvalidCredentials)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	codec := token.NewCodec("test-secret")
	stage := Authenticate(codec, newFakeUsers(testUser))

	tok, err := codec.Issue(token.Identity{ID: testUser.ID, Username: testUser.Username, Email: testUser.Email}, time.Hour)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+tok)

	var gotIdentity *model.User
	var gotClaims *token.Claims

	w := httptest.NewRecorder()
	pipeline.Run(w, r, stage, func(r *http.Request) pipeline.Result {
		gotIdentity, _ = IdentityFromContext(r.Context())
		gotClaims, _ = ClaimsFromContext(r.Context())
		return pipeline.Terminal(http.StatusOK, nil)
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", w.Code, w.Body.String())
	}
	if gotIdentity == nil || gotIdentity.ID != testUser.ID {
		t.Error("persisted identity missing from context")
	}
	if gotClaims == nil || gotClaims.UserID != testUser.ID {
		t.Error("token claims missing from context")
	}
}

func TestAuthenticateDecisionIsRepeatable(t *testing.T) {
	// Same identity, same storage state: the outcome must not change
	// between two identical requests.
	codec := token.NewCodec("test-secret")
	stage := Authenticate(codec, newFakeUsers(testUser))

	tok, err := codec.Issue(token.Identity{ID: testUser.ID, Username: testUser.Username, Email: testUser.Email}, time.Hour)
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+tok)
		w := runStage(t, stage, r)
		if w.Code != http.StatusOK {
			t.Errorf("attempt %d: status = %d, want 200", i+1, w.Code)
		}
	}
}
