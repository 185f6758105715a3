package switcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

// Coordinator is the single authority for which camera is on air for each
// event. Every accepted switch is durably logged before it is announced.
type Coordinator struct {
	store       Store
	broadcaster Broadcaster
	playbackURL PlaybackURLFunc

	mu    sync.Mutex
	locks map[string]*sync.Mutex // eventID -> per-event critical section
}

func NewCoordinator(store Store, broadcaster Broadcaster, playbackURL PlaybackURLFunc) *Coordinator {
	return &Coordinator{
		store:       store,
		broadcaster: broadcaster,
		playbackURL: playbackURL,
		locks:       make(map[string]*sync.Mutex),
	}
}

// SwitchCamera validates that camera cameraID belongs to event eventID,
// persists the switch, and announces it. Switches for the same event are
// serialized: the persisted active camera and the broadcast order always
// reflect one total order. Switches for different events proceed in parallel.
//
// Returns domain.ErrNotFound when the event does not exist and
// domain.ErrInvalidCamera when the camera is missing or belongs to a
// different event. Any other error means the switch was not persisted and
// nothing was broadcast.
func (c *Coordinator) SwitchCamera(ctx context.Context, eventID, cameraID string) (string, error) {
	lock := c.eventLock(eventID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := c.store.GetEvent(ctx, eventID); err != nil {
		return "", err
	}

	camera, err := c.store.GetCamera(ctx, cameraID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCamera
		}
		return "", err
	}
	if camera.EventID != eventID {
		return "", domain.ErrInvalidCamera
	}

	if err := c.store.RecordSwitch(ctx, eventID, cameraID); err != nil {
		return "", fmt.Errorf("record switch: %w", err)
	}

	// The broadcast is enqueued while still holding the event lock so the
	// fan-out order matches the persisted order.
	msg := &domain.ProgramUpdateMessage{
		Type:           domain.MsgTypeProgramUpdate,
		ActiveCameraID: camera.ID,
		PlaybackURL:    c.playbackURL(camera.PlaybackID),
		Timestamp:      time.Now().UnixMilli(),
	}
	if err := c.broadcaster.Broadcast(eventID, msg); err != nil {
		log.L().Warn().Err(err).
			Str(log.FieldEventID, eventID).
			Msg("program update broadcast failed")
	}

	log.L().Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(log.FieldEventID, eventID).
		Str(log.FieldCameraID, cameraID).
		Msg("camera switched")

	return camera.ID, nil
}

// SetCameraLiveness toggles a camera's is_live flag and announces the change
// on the camera's event channel. Returns domain.ErrNotFound when the camera
// does not exist.
func (c *Coordinator) SetCameraLiveness(ctx context.Context, cameraID string, isLive bool) error {
	camera, err := c.store.GetCamera(ctx, cameraID)
	if err != nil {
		return err
	}

	if err := c.store.SetCameraLive(ctx, cameraID, isLive); err != nil {
		return fmt.Errorf("set camera liveness: %w", err)
	}

	msg := &domain.CameraUpdateMessage{
		Type:      domain.MsgTypeCameraUpdate,
		CameraID:  camera.ID,
		IsLive:    isLive,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := c.broadcaster.Broadcast(camera.EventID, msg); err != nil {
		log.L().Warn().Err(err).
			Str(log.FieldEventID, camera.EventID).
			Msg("camera update broadcast failed")
	}

	return nil
}

// eventLock returns the mutex serializing switches for one event, creating
// it on first use.
func (c *Coordinator) eventLock(eventID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[eventID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[eventID] = lock
	}
	return lock
}
