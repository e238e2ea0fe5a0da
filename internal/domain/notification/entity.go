package notification

import (
	"time"
)

// EventType is the attendance transition an event reports.
type EventType string

const (
	EventCheckIn   EventType = "check_in"
	EventCheckOut  EventType = "check_out"
	EventAdminEdit EventType = "admin_edit"
)

// Audience selects who receives an event.
type Audience string

const (
	AudienceAdmin Audience = "admin" // every connected admin
	AudienceUser  Audience = "user"  // the subject user only
)

// SSE event names, kept compatible with existing clients.
const (
	NameAttendanceUpdate    = "attendance_update"
	NameAttendanceConfirmed = "attendance_confirmed"
	NameAttendanceUpdated   = "attendance_updated"
)

// Event is an attendance state change to be delivered to connected clients.
type Event struct {
	ID           string
	Type         EventType
	Audience     Audience
	UserID       string
	UserName     string
	AttendanceID string
	Status       string
	Source       string
	WorkingHours *float64
	UpdatedBy    string
	Message      string
	Timestamp    time.Time
}

// Name returns the SSE event name for the event's audience and type.
func (e Event) Name() string {
	switch {
	case e.Type == EventAdminEdit:
		return NameAttendanceUpdated
	case e.Audience == AudienceUser:
		return NameAttendanceConfirmed
	default:
		return NameAttendanceUpdate
	}
}

// Payload shapes the event for its audience. User-facing payloads omit
// identity fields, admin edits carry the subject user, record id and editor.
func (e Event) Payload() EventPayload {
	p := EventPayload{
		ID:        e.ID,
		Type:      e.Type,
		Message:   e.Message,
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
	}

	if e.Type == EventAdminEdit {
		p.UserID = e.UserID
		p.AttendanceID = e.AttendanceID
		p.UpdatedBy = e.UpdatedBy
		return p
	}

	p.Status = e.Status
	p.WorkingHours = e.WorkingHours
	if e.Audience == AudienceAdmin {
		p.UserID = e.UserID
		p.UserName = e.UserName
		p.Source = e.Source
	}
	return p
}
