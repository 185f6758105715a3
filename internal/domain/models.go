package domain

import "time"

// EventStatus is the broadcast lifecycle state of an Event.
type EventStatus string

const (
	EventStatusIdle  EventStatus = "idle"
	EventStatusLive  EventStatus = "live"
	EventStatusEnded EventStatus = "ended"
)

// Event is one scheduled broadcast session with one or more camera sources.
type Event struct {
	ID             string      `gorm:"primaryKey;size:36" json:"id"`
	Name           string      `gorm:"size:255;not null" json:"name"`
	OwnerID        string      `gorm:"size:36;index" json:"owner_id"`
	JoinCode       string      `gorm:"size:12;uniqueIndex" json:"join_code"`
	ScheduledStart *time.Time  `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time  `json:"scheduled_end,omitempty"`
	Status         EventStatus `gorm:"size:16;default:idle" json:"status"`

	// Opaque identifiers issued by the streaming provider.
	StreamID   string `gorm:"size:128" json:"stream_id"`
	StreamKey  string `gorm:"size:128" json:"-"`
	PlaybackID string `gorm:"size:128" json:"playback_id"`

	// ActiveCameraID, when set, references a Camera whose EventID is this
	// event's ID.
	ActiveCameraID *string `gorm:"size:36" json:"active_camera_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Camera is one registered video source attached to an Event. Its streaming
// credentials are issued at registration time and never change afterwards;
// EventID never changes after creation.
type Camera struct {
	ID             string  `gorm:"primaryKey;size:36" json:"id"`
	EventID        string  `gorm:"size:36;index;not null" json:"event_id"`
	Label          string  `gorm:"size:255" json:"label"`
	OperatorUserID *string `gorm:"size:36" json:"operator_user_id,omitempty"`
	OperatorName   string  `gorm:"size:255" json:"operator_name"`

	StreamID   string `gorm:"size:128" json:"stream_id"`
	StreamKey  string `gorm:"size:128" json:"-"`
	IngestURL  string `gorm:"size:512" json:"-"`
	PlaybackID string `gorm:"size:128" json:"playback_id"`

	IsLive bool `gorm:"default:false" json:"is_live"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SwitchLog is one row per accepted switch command. Append-only: rows are
// never updated or deleted.
type SwitchLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID    string    `gorm:"size:36;index;not null" json:"event_id"`
	CameraID   string    `gorm:"size:36;not null" json:"camera_id"`
	SwitchedAt time.Time `gorm:"autoCreateTime" json:"switched_at"`
}

// SimulcastTargetStatus is the provider-reported state of a restream target.
type SimulcastTargetStatus string

const (
	SimulcastStatusIdle         SimulcastTargetStatus = "idle"
	SimulcastStatusBroadcasting SimulcastTargetStatus = "broadcasting"
	SimulcastStatusErrored      SimulcastTargetStatus = "errored"
)

// SimulcastTarget mirrors a provider-side restream destination for an event.
type SimulcastTarget struct {
	ID         string                `gorm:"primaryKey;size:36" json:"id"`
	EventID    string                `gorm:"size:36;index;not null" json:"event_id"`
	Platform   string                `gorm:"size:64" json:"platform"`
	URL        string                `gorm:"size:512" json:"url"`
	StreamKey  string                `gorm:"size:256" json:"-"`
	ExternalID string                `gorm:"size:128" json:"external_id"`
	Status     SimulcastTargetStatus `gorm:"size:16;default:idle" json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
}

// User is an organizer, director, or operator account.
type User struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username      string    `gorm:"size:64" json:"username"`
	PasswordHash  string    `gorm:"size:512;not null" json:"-"`
	EmailVerified bool      `gorm:"default:false" json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Session is a server-side session row referenced by the session cookie.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    string    `gorm:"size:36;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is one chat line in an event's sidebar.
type ChatMessage struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	EventID     string    `gorm:"size:36;index;not null" json:"event_id"`
	UserID      *string   `gorm:"size:36" json:"user_id,omitempty"`
	DisplayName string    `gorm:"size:64" json:"display_name"`
	Body        string    `gorm:"size:2000" json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}
