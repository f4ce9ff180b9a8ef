package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Upsert(_ context.Context, user *domain.User) (*domain.User, error) {
	for id, u := range r.users {
		if u.Username == user.Username {
			clone := *user
			clone.ID = id
			r.users[id] = &clone
			out := clone
			return &out, nil
		}
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

type fakeSessionStore struct {
	sessions map[string]string // id -> userID
	nextID   int
	deleted  []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (s *fakeSessionStore) Create(_ context.Context, userID string, _ time.Duration) (string, error) {
	s.nextID++
	id := fmt.Sprintf("sess-%d", s.nextID)
	s.sessions[id] = userID
	return id, nil
}

func (s *fakeSessionStore) Touch(_ context.Context, id string, _ time.Duration) (string, error) {
	userID, ok := s.sessions[id]
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	return userID, nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func newAuthService(t *testing.T) (*AuthService, *stubUserRepo, *fakeSessionStore) {
	t.Helper()
	users := newStubUserRepo()
	sessions := newFakeSessionStore()
	svc := NewAuthService(users, sessions, "test-signing-key", time.Hour, discardLogger)
	return svc, users, sessions
}

func seedUser(t *testing.T, users *stubUserRepo, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := users.Upsert(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, sessions := newAuthService(t)
	seedUser(t, users, "admin", "s3cret")

	token, err := svc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	sid, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if _, ok := sessions.sessions[sid]; !ok {
		t.Errorf("token carries session %q which the store does not hold", sid)
	}
}

func TestAuthService_Login_WrongPassword_GenericError(t *testing.T) {
	svc, users, _ := newAuthService(t)
	seedUser(t, users, "admin", "s3cret")

	_, err := svc.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser_SameError(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user must report the same generic notice, got %v", err)
	}
}

func TestAuthService_Login_EmptyFields(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if _, err := svc.Login(context.Background(), "", "x"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty username: got %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: got %v", err)
	}
}

func TestAuthService_Logout_DeletesSession(t *testing.T) {
	svc, users, sessions := newAuthService(t)
	seedUser(t, users, "admin", "s3cret")

	token, _ := svc.Login(context.Background(), "admin", "s3cret")
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Errorf("expected no live sessions, got %d", len(sessions.sessions))
	}
}

func TestAuthService_Logout_GarbageTokenIgnored(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("garbage token must be ignored, got %v", err)
	}
}

func TestAuthService_VerifyToken_RejectsTamperedToken(t *testing.T) {
	svc, users, _ := newAuthService(t)
	seedUser(t, users, "admin", "s3cret")
	token, _ := svc.Login(context.Background(), "admin", "s3cret")

	other := NewAuthService(users, newFakeSessionStore(), "another-key", time.Hour, discardLogger)
	if _, err := other.VerifyToken(token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("token signed with a different key must not verify, got %v", err)
	}
}

func TestAuthService_Bootstrap_CreatesAndRekeys(t *testing.T) {
	svc, users, _ := newAuthService(t)

	if err := svc.Bootstrap(context.Background(), "admin", "first"); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin", "first"); err != nil {
		t.Fatalf("login with bootstrapped password failed: %v", err)
	}

	// A second bootstrap replaces the password without creating a new account.
	if err := svc.Bootstrap(context.Background(), "admin", "second"); err != nil {
		t.Fatalf("re-bootstrap failed: %v", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected 1 account, got %d", len(users.users))
	}
	if _, err := svc.Login(context.Background(), "admin", "first"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("old password must stop working after re-bootstrap")
	}
	if _, err := svc.Login(context.Background(), "admin", "second"); err != nil {
		t.Errorf("new password must work, got %v", err)
	}
}

func TestAuthService_Bootstrap_MissingCredentials(t *testing.T) {
	svc, _, _ := newAuthService(t)

	if err := svc.Bootstrap(context.Background(), "", "pw"); err == nil {
		t.Error("expected error for missing username")
	}
	if err := svc.Bootstrap(context.Background(), "admin", ""); err == nil {
		t.Error("expected error for missing password")
	}
}
