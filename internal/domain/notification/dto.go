package notification

type EventPayload struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	UserID       string    `json:"user_id,omitempty"`
	UserName     string    `json:"user_name,omitempty"`
	AttendanceID string    `json:"attendance_id,omitempty"`
	Status       string    `json:"status,omitempty"`
	Source       string    `json:"source,omitempty"`
	WorkingHours *float64  `json:"working_hours,omitempty"`
	UpdatedBy    string    `json:"updated_by,omitempty"`
	Message      string    `json:"message"`
	Timestamp    string    `json:"timestamp"`
}

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string       `json:"event"`
	Data  EventPayload `json:"data"`
}
