package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

// SimulcastTargetStore persists provider-side restream destinations.
type SimulcastTargetStore struct {
	db *gorm.DB
}

func (s *SimulcastTargetStore) Create(ctx context.Context, target *domain.SimulcastTarget) error {
	return translate(s.db.WithContext(ctx).Create(target).Error)
}

func (s *SimulcastTargetStore) Get(ctx context.Context, id string) (*domain.SimulcastTarget, error) {
	var target domain.SimulcastTarget
	if err := s.db.WithContext(ctx).First(&target, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &target, nil
}

func (s *SimulcastTargetStore) ListByEvent(ctx context.Context, eventID string) ([]domain.SimulcastTarget, error) {
	var targets []domain.SimulcastTarget
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&targets).Error
	return targets, translate(err)
}

func (s *SimulcastTargetStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&domain.SimulcastTarget{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
