package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

// SwitchLogStore persists the append-only switch audit trail.
type SwitchLogStore struct {
	db *gorm.DB
}

func (s *SwitchLogStore) Create(ctx context.Context, eventID, cameraID string) (*domain.SwitchLog, error) {
	entry := &domain.SwitchLog{
		EventID:  eventID,
		CameraID: cameraID,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, translate(err)
	}
	return entry, nil
}

func (s *SwitchLogStore) ListByEvent(ctx context.Context, eventID string) ([]domain.SwitchLog, error) {
	var entries []domain.SwitchLog
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("id ASC").
		Find(&entries).Error
	return entries, translate(err)
}

func (s *SwitchLogStore) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.SwitchLog{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, translate(err)
}
