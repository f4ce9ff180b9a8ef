package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/clinic-system/internal/core/domain"
	"github.com/clinicore/clinic-system/internal/core/ports"
)

const defaultSessionTTL = time.Hour

// AuthService implements login, logout, and the startup account bootstrap.
// Session state lives server-side in the SessionStore; the token handed to
// the client is a signed envelope carrying only the opaque session id.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionStore
	signingKey []byte
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, signingKey string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		signingKey: []byte(signingKey),
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// SessionTTL returns the configured idle window.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same notice as a wrong password: do not reveal which field failed.
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	sid, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return "", err
	}

	token, err := s.signSession(sid)
	if err != nil {
		_ = s.sessions.Delete(ctx, sid)
		return "", err
	}

	s.logger.Info().Str("username", username).Msg("login succeeded")
	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	sid, err := s.VerifyToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, sid)
}

func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("bootstrap credentials missing")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.users.Upsert(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("operator account bootstrapped")
	return nil
}

// signSession wraps the opaque session id in an HS256-signed token so a
// tampered cookie fails before the store is consulted.
func (s *AuthService) signSession(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.signingKey)
}

// VerifyToken checks the token signature and returns the session id it
// carries. Expiry is not checked here: the store's sliding TTL is the single
// authority on session lifetime.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.signingKey, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
