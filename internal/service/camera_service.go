package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/internal/store"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

// CameraService registers operator cameras against events. Each camera gets
// its own provider stream; the credentials are issued once and never change.
type CameraService struct {
	store    *store.Store
	provider StreamProvider
}

func NewCameraService(st *store.Store, provider StreamProvider) *CameraService {
	return &CameraService{
		store:    st,
		provider: provider,
	}
}

// RegisterCameraParams carries operator input for a new camera.
type RegisterCameraParams struct {
	EventID        string
	Label          string
	OperatorName   string
	OperatorUserID *string
}

// RegisterCamera provisions a provider stream for the operator and persists
// the camera. The returned camera includes the ingest credentials the
// operator streams with.
func (s *CameraService) RegisterCamera(ctx context.Context, p RegisterCameraParams) (*domain.Camera, error) {
	if _, err := s.store.Events.Get(ctx, p.EventID); err != nil {
		return nil, err
	}

	stream, err := s.provider.CreateLiveStream(ctx)
	if err != nil {
		return nil, fmt.Errorf("provision camera stream: %w", err)
	}

	camera := &domain.Camera{
		ID:             uuid.New().String(),
		EventID:        p.EventID,
		Label:          p.Label,
		OperatorName:   p.OperatorName,
		OperatorUserID: p.OperatorUserID,
		StreamID:       stream.ID,
		StreamKey:      stream.StreamKey,
		IngestURL:      s.provider.IngestURL(),
		PlaybackID:     stream.PlaybackID,
	}
	if err := s.store.Cameras.Create(ctx, camera); err != nil {
		return nil, err
	}

	log.L().Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(log.FieldEventID, p.EventID).
		Str(log.FieldCameraID, camera.ID).
		Msg("camera registered")

	return camera, nil
}

func (s *CameraService) GetCamera(ctx context.Context, id string) (*domain.Camera, error) {
	return s.store.Cameras.Get(ctx, id)
}

func (s *CameraService) ListCameras(ctx context.Context, eventID string) ([]domain.Camera, error) {
	return s.store.Cameras.ListByEvent(ctx, eventID)
}
