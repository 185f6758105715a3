package viewers

import (
	"context"
	"time"

	"github.com/jason-czar/Sportstreams/internal/domain"
	"github.com/jason-czar/Sportstreams/pkg/log"
)

// Broadcaster pushes a message to an event's channel.
type Broadcaster interface {
	Broadcast(eventID string, message interface{}) error
}

// ChannelLister reports which event channels currently have subscribers.
type ChannelLister interface {
	ActiveChannels() []string
}

// Tracker maintains per-event viewer counts and feeds VIEWER_COUNT_UPDATE
// broadcasts: immediately on join/leave, and periodically for every channel
// with subscribers.
type Tracker struct {
	store       PresenceStore
	broadcaster Broadcaster
	channels    ChannelLister
	interval    time.Duration
}

func NewTracker(store PresenceStore, broadcaster Broadcaster, channels ChannelLister, interval time.Duration) *Tracker {
	return &Tracker{
		store:       store,
		broadcaster: broadcaster,
		channels:    channels,
		interval:    interval,
	}
}

// ViewerJoined records a viewer and announces the new count.
func (t *Tracker) ViewerJoined(ctx context.Context, eventID, viewerID string) {
	if err := t.store.Add(ctx, eventID, viewerID); err != nil {
		log.L().Warn().Err(err).Str(log.FieldEventID, eventID).Msg("presence add failed")
		return
	}
	t.publishCount(ctx, eventID)
}

// ViewerLeft removes a viewer and announces the new count.
func (t *Tracker) ViewerLeft(ctx context.Context, eventID, viewerID string) {
	if err := t.store.Remove(ctx, eventID, viewerID); err != nil {
		log.L().Warn().Err(err).Str(log.FieldEventID, eventID).Msg("presence remove failed")
		return
	}
	t.publishCount(ctx, eventID)
}

// Run refreshes counts for all active channels until ctx is cancelled.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, eventID := range t.channels.ActiveChannels() {
				t.publishCount(ctx, eventID)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (t *Tracker) publishCount(ctx context.Context, eventID string) {
	count, err := t.store.Count(ctx, eventID)
	if err != nil {
		log.L().Warn().Err(err).Str(log.FieldEventID, eventID).Msg("presence count failed")
		return
	}

	msg := &domain.ViewerCountUpdateMessage{
		Type:      domain.MsgTypeViewerCountUpdate,
		Count:     count,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := t.broadcaster.Broadcast(eventID, msg); err != nil {
		log.L().Warn().Err(err).Str(log.FieldEventID, eventID).Msg("viewer count broadcast failed")
	}
}
