package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/pkg/database"
)

// Store bundles the repositories backed by one relational database.
type Store struct {
	Events    *EventStore
	Cameras   *CameraStore
	Switches  *SwitchLogStore
	Simulcast *SimulcastTargetStore
	Users     *UserStore
	Sessions  *SessionStore
	Chat      *ChatMessageStore

	db *gorm.DB
}

// Open connects to the configured database, runs migrations, and returns
// the repository bundle.
func Open(cfg *database.Config) (*Store, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(db)
}

// NewStore builds the repository bundle over an existing connection and
// runs migrations. Used directly by tests with an in-memory database.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := database.AutoMigrate(db,
		&domain.User{},
		&domain.Session{},
		&domain.Event{},
		&domain.Camera{},
		&domain.SwitchLog{},
		&domain.SimulcastTarget{},
		&domain.ChatMessage{},
	); err != nil {
		return nil, err
	}

	return &Store{
		Events:    &EventStore{db: db},
		Cameras:   &CameraStore{db: db},
		Switches:  &SwitchLogStore{db: db},
		Simulcast: &SimulcastTargetStore{db: db},
		Users:     &UserStore{db: db},
		Sessions:  &SessionStore{db: db},
		Chat:      &ChatMessageStore{db: db},
		db:        db,
	}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps driver-level errors to domain sentinels so callers can
// distinguish not-found from other failures.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
