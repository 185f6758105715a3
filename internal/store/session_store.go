package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

// SessionStore persists server-side session rows.
type SessionStore struct {
	db *gorm.DB
}

func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	return translate(s.db.WithContext(ctx).Create(session).Error)
}

func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	if err := s.db.WithContext(ctx).First(&session, "token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return translate(s.db.WithContext(ctx).Delete(&domain.Session{}, "token = ?", token).Error)
}

// DeleteExpired removes sessions whose expiry is before now.
func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) error {
	return translate(s.db.WithContext(ctx).
		Delete(&domain.Session{}, "expires_at < ?", now).Error)
}
