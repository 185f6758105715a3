package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/internal/store"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

// AuthService handles account registration and cookie-backed sessions.
type AuthService struct {
	users    *store.UserStore
	sessions *store.SessionStore
	ttl      time.Duration
}

func NewAuthService(users *store.UserStore, sessions *store.SessionStore, ttl time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
	}
}

// Register creates a new account. Returns domain.ErrEmailTaken when the
// email is already in use.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.L().Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(log.FieldUserID, user.ID).
		Msg("user registered")

	return user, nil
}

// Login verifies credentials and issues a session row. Returns
// domain.ErrInvalidCredentials on any mismatch, never revealing whether the
// email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := verifyPassword(user.PasswordHash, password); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, nil, err
	}

	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	// Opportunistic cleanup of stale rows.
	if err := s.sessions.DeleteExpired(ctx, time.Now()); err != nil {
		log.L().Warn().Err(err).Msg("expired session cleanup failed")
	}

	return session, user, nil
}

// Logout deletes the session row. Deleting an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	err := s.sessions.Delete(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// ValidateSession resolves a session cookie value to its user. Returns
// domain.ErrSessionExpired for unknown or expired tokens.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.User, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.L().Warn().Err(err).Msg("expired session delete failed")
		}
		return nil, domain.ErrSessionExpired
	}

	return s.users.Get(ctx, session.UserID)
}

// VerifyEmail is intentionally unfinished: token storage and atomic
// consumption are not wired up yet.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	return domain.ErrNotImplemented
}

// ResetPasswordByToken is intentionally unfinished: token storage and atomic
// consumption are not wired up yet.
func (s *AuthService) ResetPasswordByToken(ctx context.Context, token, newPassword string) error {
	return domain.ErrNotImplemented
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
