package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor
	FieldUserID   = "user_id"
	FieldUsername = "username"

	// Broadcast domain
	FieldEventID  = "event_id"
	FieldCameraID = "camera_id"
	FieldClientID = "client_id"

	// Log type (for audit entries)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
