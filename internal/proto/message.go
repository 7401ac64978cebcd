package proto

const (
	// ServiceName is reported by the health endpoint.
	ServiceName = "nlweb-api"

	StatusHealthy = "healthy"
	StatusSuccess = "success"

	// TimestampLayout renders chat timestamps as YYYY-MM-DDTHH:MM:SSZ.
	TimestampLayout = "2006-01-02T15:04:05Z"
)

// User-facing error messages.
const (
	ErrMsgInvalidJSON     = "Invalid JSON in request body"
	ErrMsgEmptyMessage    = "Message cannot be empty"
	ErrMsgInternal        = "Internal server error"
	ErrMsgTooManyRequests = "Too many requests"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned for an answered chat message.
type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthStatus is the static body of GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Healthy returns the health payload.
func Healthy() HealthStatus {
	return HealthStatus{Status: StatusHealthy, Service: ServiceName}
}
