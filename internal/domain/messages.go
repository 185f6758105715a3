package domain

// WebSocket message types from client.
const (
	MsgTypeJoinEvent  = "join_event"
	MsgTypeLeaveEvent = "leave_event"
	MsgTypePing       = "ping"
)

// WebSocket message types to client.
const (
	MsgTypeCameraUpdate      = "CAMERA_UPDATE"
	MsgTypeProgramUpdate     = "PROGRAM_UPDATE"
	MsgTypeViewerCountUpdate = "VIEWER_COUNT_UPDATE"
	MsgTypeChatMessage       = "chat_message"
	MsgTypeEventJoined       = "event_joined"
	MsgTypeEventLeft         = "event_left"
	MsgTypePong              = "pong"
)

// BaseMessage is the base structure for all WebSocket messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

type JoinEventMessage struct {
	Type    string `json:"type"`
	EventID string `json:"eventId"`
	UserID  string `json:"userId,omitempty"`
}

type LeaveEventMessage struct {
	Type    string `json:"type"`
	EventID string `json:"eventId"`
}

// Server -> Client messages

type CameraUpdateMessage struct {
	Type      string `json:"type"`
	CameraID  string `json:"cameraId"`
	IsLive    bool   `json:"isLive"`
	Timestamp int64  `json:"timestamp"`
}

type ProgramUpdateMessage struct {
	Type           string `json:"type"`
	ActiveCameraID string `json:"activeCameraId"`
	PlaybackURL    string `json:"playbackUrl"`
	Timestamp      int64  `json:"timestamp"`
}

type ViewerCountUpdateMessage struct {
	Type      string `json:"type"`
	Count     int64  `json:"count"`
	Timestamp int64  `json:"timestamp"`
}

type ChatMessageOut struct {
	Type        string `json:"type"`
	MessageID   string `json:"messageId"`
	EventID     string `json:"eventId"`
	UserID      string `json:"userId,omitempty"`
	DisplayName string `json:"displayName"`
	Body        string `json:"body"`
	Timestamp   int64  `json:"timestamp"`
}

type EventJoinedMessage struct {
	Type    string `json:"type"`
	EventID string `json:"eventId"`
}

type EventLeftMessage struct {
	Type    string `json:"type"`
	EventID string `json:"eventId"`
}
