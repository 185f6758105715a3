package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

// CameraStore persists cameras. Streaming credentials and the owning event
// are written once at registration and never updated afterwards.
type CameraStore struct {
	db *gorm.DB
}

func (s *CameraStore) Create(ctx context.Context, camera *domain.Camera) error {
	return translate(s.db.WithContext(ctx).Create(camera).Error)
}

func (s *CameraStore) Get(ctx context.Context, id string) (*domain.Camera, error) {
	var camera domain.Camera
	if err := s.db.WithContext(ctx).First(&camera, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &camera, nil
}

func (s *CameraStore) ListByEvent(ctx context.Context, eventID string) ([]domain.Camera, error) {
	var cameras []domain.Camera
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&cameras).Error
	return cameras, translate(err)
}

// SetLive updates only the is_live flag.
func (s *CameraStore) SetLive(ctx context.Context, id string, isLive bool) error {
	res := s.db.WithContext(ctx).Model(&domain.Camera{}).
		Where("id = ?", id).
		Update("is_live", isLive)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
