package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

// EventStore persists events.
type EventStore struct {
	db *gorm.DB
}

func (s *EventStore) Create(ctx context.Context, event *domain.Event) error {
	return translate(s.db.WithContext(ctx).Create(event).Error)
}

func (s *EventStore) Get(ctx context.Context, id string) (*domain.Event, error) {
	var event domain.Event
	if err := s.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (s *EventStore) GetByJoinCode(ctx context.Context, code string) (*domain.Event, error) {
	var event domain.Event
	if err := s.db.WithContext(ctx).First(&event, "join_code = ?", code).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (s *EventStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Event, error) {
	var events []domain.Event
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&events).Error
	return events, translate(err)
}

// SetActiveCamera updates only the active_camera_id column. Callers validate
// the event exists first: repeated switches to the already-active camera
// report zero affected rows on some drivers, so rows affected cannot be used
// as an existence check here.
func (s *EventStore) SetActiveCamera(ctx context.Context, eventID, cameraID string) error {
	err := s.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", eventID).
		Update("active_camera_id", cameraID).Error
	return translate(err)
}

// SetStatus updates only the lifecycle status column.
func (s *EventStore) SetStatus(ctx context.Context, eventID string, status domain.EventStatus) error {
	res := s.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", eventID).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
