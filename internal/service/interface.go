package service

import (
	"context"

	"github.com/jason-czar/Sportstreams/internal/streaming"
)

// StreamProvider is the streaming-provider surface the services depend on.
// Satisfied by *streaming.Client; tests substitute a stub.
type StreamProvider interface {
	CreateLiveStream(ctx context.Context) (*streaming.LiveStream, error)
	CompleteLiveStream(ctx context.Context, streamID string) error
	CreateSimulcastTarget(ctx context.Context, streamID, url, streamKey string) (*streaming.SimulcastTarget, error)
	DeleteSimulcastTarget(ctx context.Context, streamID, targetID string) error
	PlaybackURL(playbackID string) string
	IngestURL() string
}

// Broadcaster pushes a message to an event's channel.
type Broadcaster interface {
	Broadcast(eventID string, message interface{}) error
}
