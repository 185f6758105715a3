package service_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/jason-czar/Sportstreams/internal/streaming"
)

// stubProvider hands out deterministic stream handles and records calls.
type stubProvider struct {
	mu        sync.Mutex
	created   int
	completed []string
	targets   map[string]string // targetID -> streamID
	fail      error
}

func newStubProvider() *stubProvider {
	return &stubProvider{targets: make(map[string]string)}
}

func (p *stubProvider) CreateLiveStream(ctx context.Context) (*streaming.LiveStream, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return nil, p.fail
	}
	p.created++
	n := p.created
	return &streaming.LiveStream{
		ID:         fmt.Sprintf("ls-%d", n),
		StreamKey:  fmt.Sprintf("sk-%d", n),
		PlaybackID: fmt.Sprintf("pb-%d", n),
	}, nil
}

func (p *stubProvider) CompleteLiveStream(ctx context.Context, streamID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = append(p.completed, streamID)
	return nil
}

func (p *stubProvider) CreateSimulcastTarget(ctx context.Context, streamID, url, streamKey string) (*streaming.SimulcastTarget, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return nil, p.fail
	}
	id := fmt.Sprintf("st-%d", len(p.targets)+1)
	p.targets[id] = streamID
	return &streaming.SimulcastTarget{ID: id, URL: url, Status: "idle"}, nil
}

func (p *stubProvider) DeleteSimulcastTarget(ctx context.Context, streamID, targetID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.targets, targetID)
	return nil
}

func (p *stubProvider) PlaybackURL(playbackID string) string {
	return "https://stream.example.com/" + playbackID + ".m3u8"
}

func (p *stubProvider) IngestURL() string {
	return "rtmps://ingest.example.com:443/app"
}

// recordingBroadcaster captures fan-out messages for assertions.
type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []broadcastRecord
}

type broadcastRecord struct {
	EventID string
	Message interface{}
}

func (b *recordingBroadcaster) Broadcast(eventID string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, broadcastRecord{EventID: eventID, Message: message})
	return nil
}

func (b *recordingBroadcaster) all() []broadcastRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]broadcastRecord, len(b.sent))
	copy(out, b.sent)
	return out
}
