package switcher

import (
	"context"

	"github.com/jason-czar/Sportstreams/internal/domain"
)

// Store is the persistence surface the coordinator depends on. All methods
// are atomic: RecordSwitch either persists both the audit row and the
// active-camera update, or neither.
type Store interface {
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	GetCamera(ctx context.Context, id string) (*domain.Camera, error)
	RecordSwitch(ctx context.Context, eventID, cameraID string) error
	SetCameraLive(ctx context.Context, cameraID string, isLive bool) error
}

// Broadcaster pushes a message to every client subscribed to an event's
// channel. Delivery is best effort; per-client failures never surface here.
type Broadcaster interface {
	Broadcast(eventID string, message interface{}) error
}

// PlaybackURLFunc resolves a provider playback ID to a viewer-facing URL.
// Pure string formatting with no failure mode.
type PlaybackURLFunc func(playbackID string) string
