package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/internal/store"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

// Join codes skip characters that read ambiguously on a phone screen.
const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const joinCodeLength = 6

// EventService owns the event lifecycle: creation with provider stream
// provisioning, one-directional status transitions, and simulcast targets.
type EventService struct {
	store    *store.Store
	provider StreamProvider
}

func NewEventService(st *store.Store, provider StreamProvider) *EventService {
	return &EventService{
		store:    st,
		provider: provider,
	}
}

// CreateEvent provisions a live stream with the provider and persists the
// event with a fresh join code, in the idle state.
func (s *EventService) CreateEvent(ctx context.Context, ownerID, name string) (*domain.Event, error) {
	stream, err := s.provider.CreateLiveStream(ctx)
	if err != nil {
		return nil, fmt.Errorf("provision live stream: %w", err)
	}

	code, err := newJoinCode()
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:         uuid.New().String(),
		Name:       name,
		OwnerID:    ownerID,
		JoinCode:   code,
		Status:     domain.EventStatusIdle,
		StreamID:   stream.ID,
		StreamKey:  stream.StreamKey,
		PlaybackID: stream.PlaybackID,
	}
	if err := s.store.Events.Create(ctx, event); err != nil {
		return nil, err
	}

	log.L().Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(log.FieldEventID, event.ID).
		Str(log.FieldUserID, ownerID).
		Msg("event created")

	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.store.Events.Get(ctx, id)
}

func (s *EventService) GetEventByJoinCode(ctx context.Context, code string) (*domain.Event, error) {
	return s.store.Events.GetByJoinCode(ctx, code)
}

func (s *EventService) ListEvents(ctx context.Context, ownerID string) ([]domain.Event, error) {
	return s.store.Events.ListByOwner(ctx, ownerID)
}

// EventDetail aggregates everything the director console needs for one event.
type EventDetail struct {
	Event            *domain.Event            `json:"event"`
	Cameras          []domain.Camera          `json:"cameras"`
	SimulcastTargets []domain.SimulcastTarget `json:"simulcast_targets"`
	PlaybackURL      string                   `json:"playback_url"`
	SwitchCount      int64                    `json:"switch_count"`
}

// GetEventDetail loads the event, its cameras, its simulcast targets, and
// the switch-trail length in parallel.
func (s *EventService) GetEventDetail(ctx context.Context, id string) (*EventDetail, error) {
	var detail EventDetail
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		event, err := s.store.Events.Get(egCtx, id)
		if err != nil {
			return err
		}
		detail.Event = event
		detail.PlaybackURL = s.provider.PlaybackURL(event.PlaybackID)
		return nil
	})

	eg.Go(func() error {
		cameras, err := s.store.Cameras.ListByEvent(egCtx, id)
		if err != nil {
			return err
		}
		detail.Cameras = cameras
		return nil
	})

	eg.Go(func() error {
		targets, err := s.store.Simulcast.ListByEvent(egCtx, id)
		if err != nil {
			return err
		}
		detail.SimulcastTargets = targets
		return nil
	})

	eg.Go(func() error {
		count, err := s.store.Switches.CountByEvent(egCtx, id)
		if err != nil {
			return err
		}
		detail.SwitchCount = count
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SwitchHistory returns the event's switch trail in the order the switches
// were accepted.
func (s *EventService) SwitchHistory(ctx context.Context, eventID string) ([]domain.SwitchLog, error) {
	if _, err := s.store.Events.Get(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.Switches.ListByEvent(ctx, eventID)
}

// StartEvent moves an idle event to live. Transitions are one-directional;
// anything else returns domain.ErrInvalidTransition.
func (s *EventService) StartEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.transition(ctx, id, domain.EventStatusIdle, domain.EventStatusLive)
}

// EndEvent moves a live event to ended and tells the provider the broadcast
// is complete. There is no resume after ended.
func (s *EventService) EndEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.transition(ctx, id, domain.EventStatusLive, domain.EventStatusEnded)
	if err != nil {
		return nil, err
	}

	if err := s.provider.CompleteLiveStream(ctx, event.StreamID); err != nil {
		log.L().Warn().Err(err).
			Str(log.FieldEventID, id).
			Msg("provider complete call failed")
	}
	return event, nil
}

func (s *EventService) transition(ctx context.Context, id string, from, to domain.EventStatus) (*domain.Event, error) {
	event, err := s.store.Events.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != from {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.store.Events.SetStatus(ctx, id, to); err != nil {
		return nil, err
	}
	event.Status = to

	log.L().Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(log.FieldEventID, id).
		Str("status", string(to)).
		Msg("event status changed")

	return event, nil
}

// EnableSimulcast creates a restream target with the provider and records it.
func (s *EventService) EnableSimulcast(ctx context.Context, eventID, platform, url, streamKey string) (*domain.SimulcastTarget, error) {
	event, err := s.store.Events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	created, err := s.provider.CreateSimulcastTarget(ctx, event.StreamID, url, streamKey)
	if err != nil {
		return nil, fmt.Errorf("create simulcast target: %w", err)
	}

	target := &domain.SimulcastTarget{
		ID:         uuid.New().String(),
		EventID:    eventID,
		Platform:   platform,
		URL:        url,
		StreamKey:  streamKey,
		ExternalID: created.ID,
		Status:     domain.SimulcastTargetStatus(created.Status),
	}
	if target.Status == "" {
		target.Status = domain.SimulcastStatusIdle
	}
	if err := s.store.Simulcast.Create(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// DisableSimulcast removes a restream target from the provider and the store.
func (s *EventService) DisableSimulcast(ctx context.Context, eventID, targetID string) error {
	event, err := s.store.Events.Get(ctx, eventID)
	if err != nil {
		return err
	}

	target, err := s.store.Simulcast.Get(ctx, targetID)
	if err != nil {
		return err
	}
	if target.EventID != eventID {
		return domain.ErrNotFound
	}

	if err := s.provider.DeleteSimulcastTarget(ctx, event.StreamID, target.ExternalID); err != nil {
		return fmt.Errorf("delete simulcast target: %w", err)
	}
	return s.store.Simulcast.Delete(ctx, targetID)
}

func newJoinCode() (string, error) {
	code := make([]byte, joinCodeLength)
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
