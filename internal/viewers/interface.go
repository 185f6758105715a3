package viewers

import "context"

// PresenceStore tracks which viewers are watching which event.
type PresenceStore interface {
	Add(ctx context.Context, eventID, viewerID string) error
	Remove(ctx context.Context, eventID, viewerID string) error
	Count(ctx context.Context, eventID string) (int64, error)
	Close() error
}
