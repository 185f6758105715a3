package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

// The methods below satisfy the switch coordinator's Store interface.

func (s *Store) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.Events.Get(ctx, id)
}

func (s *Store) GetCamera(ctx context.Context, id string) (*domain.Camera, error) {
	return s.Cameras.Get(ctx, id)
}

func (s *Store) SetCameraLive(ctx context.Context, cameraID string, isLive bool) error {
	return s.Cameras.SetLive(ctx, cameraID, isLive)
}

// RecordSwitch appends the audit row and updates the event's active camera
// in one transaction, so a failed write leaves neither side applied.
func (s *Store) RecordSwitch(ctx context.Context, eventID, cameraID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switches := &SwitchLogStore{db: tx}
		if _, err := switches.Create(ctx, eventID, cameraID); err != nil {
			return err
		}

		events := &EventStore{db: tx}
		return events.SetActiveCamera(ctx, eventID, cameraID)
	})
}
