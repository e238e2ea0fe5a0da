package attendance

import (
	"fmt"
	"time"
	_ "time/tzdata" // zones must resolve in minimal containers
)

const (
	DefaultAccuracyBuffer = 30.0
	MinAccuracyBuffer     = 20.0
	MaxAccuracyBuffer     = 100.0

	MessageMarked = "Attendance marked successfully"
)

// ClockTime is a time of day at minute resolution.
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(s string) (ClockTime, error) {
	var c ClockTime
	if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
		return ClockTime{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid time of day %q", s)
	}
	return c, nil
}

// ClockOf returns the local time of day of t in loc, seconds truncated.
func ClockOf(t time.Time, loc *time.Location) ClockTime {
	local := t.In(loc)
	return ClockTime{Hour: local.Hour(), Minute: local.Minute()}
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Kitchen formats the time as "10:00 AM".
func (c ClockTime) Kitchen() string {
	h := c.Hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if c.Hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, suffix)
}

// Policy is the working-day rule set. Location is the office timezone: it keys
// calendar days, decides weekends and holidays, the late threshold and admin
// edits. Callers may supply their own timezone for the time window and the
// automatic end-of-day check-out.
type Policy struct {
	Location     *time.Location
	WorkStart    ClockTime
	WorkEnd      ClockTime
	LateAfter    ClockTime
	AutoCheckout bool
}

func NewPolicy(timezone, workStart, workEnd, lateAfter string, autoCheckout bool) (Policy, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Policy{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	start, err := ParseClockTime(workStart)
	if err != nil {
		return Policy{}, err
	}
	end, err := ParseClockTime(workEnd)
	if err != nil {
		return Policy{}, err
	}
	late, err := ParseClockTime(lateAfter)
	if err != nil {
		return Policy{}, err
	}
	if start.Minutes() >= end.Minutes() {
		return Policy{}, fmt.Errorf("work start %s must be before work end %s", start, end)
	}

	return Policy{
		Location:     loc,
		WorkStart:    start,
		WorkEnd:      end,
		LateAfter:    late,
		AutoCheckout: autoCheckout,
	}, nil
}

// ResolveTimezone returns the caller's zone, or the office zone when none is given.
func (p Policy) ResolveTimezone(name string) (*time.Location, error) {
	if name == "" {
		return p.Location, nil
	}
	return time.LoadLocation(name)
}

// Day returns midnight of t's calendar day in the office timezone.
func (p Policy) Day(t time.Time) time.Time {
	local := t.In(p.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.Location)
}

// InWindow reports whether c lies within working hours, both ends inclusive.
func (p Policy) InWindow(c ClockTime) bool {
	return c.Minutes() >= p.WorkStart.Minutes() && c.Minutes() <= p.WorkEnd.Minutes()
}

func (p Policy) Window() string {
	return p.WorkStart.String() + "-" + p.WorkEnd.String()
}

// IsLate reports whether t is strictly after the late threshold of its office day.
func (p Policy) IsLate(t time.Time) bool {
	day := p.Day(t)
	threshold := time.Date(day.Year(), day.Month(), day.Day(), p.LateAfter.Hour, p.LateAfter.Minute, 0, 0, p.Location)
	return t.After(threshold)
}

func (p Policy) StatusAt(t time.Time) Status {
	if p.IsLate(t) {
		return StatusLate
	}
	return StatusPresent
}

func (p Policy) MarkMessage(status Status) string {
	if status == StatusLate {
		return fmt.Sprintf("Marked as late (after %s)", p.LateAfter.Kitchen())
	}
	return MessageMarked
}

// EndOfDay returns the end of working hours on t's calendar day in loc.
// It never precedes t, so a check-in during the closing minute cannot
// produce negative working hours.
func (p Policy) EndOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), p.WorkEnd.Hour, p.WorkEnd.Minute, 0, 0, loc)
	if end.Before(t) {
		return t
	}
	return end
}

// AccuracyBuffer widens the geofence by the reported GPS accuracy, clamped to
// [20, 100] meters, or 30 meters when the device reports none.
func AccuracyBuffer(accuracy *float64) float64 {
	if accuracy == nil {
		return DefaultAccuracyBuffer
	}
	return min(max(*accuracy, MinAccuracyBuffer), MaxAccuracyBuffer)
}

// AdmissionRadius returns the radius a position is admitted within and the buffer used.
func AdmissionRadius(baseRadius float64, accuracy *float64) (allowed, buffer float64) {
	buffer = AccuracyBuffer(accuracy)
	return baseRadius + buffer, buffer
}
