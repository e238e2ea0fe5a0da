package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) Policy {
	t.Helper()
	p, err := NewPolicy("Asia/Kolkata", "09:00", "17:00", "10:00", true)
	require.NoError(t, err)
	return p
}

func at(t *testing.T, p Policy, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", value, p.Location)
	require.NoError(t, err)
	return ts
}

func TestNewPolicy_Invalid(t *testing.T) {
	_, err := NewPolicy("Nowhere/City", "09:00", "17:00", "10:00", true)
	assert.Error(t, err)

	_, err = NewPolicy("UTC", "25:00", "17:00", "10:00", true)
	assert.Error(t, err)

	_, err = NewPolicy("UTC", "17:00", "09:00", "10:00", true)
	assert.Error(t, err)
}

func TestPolicy_InWindow(t *testing.T) {
	p := testPolicy(t)

	tests := []struct {
		clock string
		want  bool
	}{
		{"08:59", false},
		{"09:00", true},
		{"12:30", true},
		{"17:00", true},
		{"17:01", false},
		{"00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.clock, func(t *testing.T) {
			c, err := ParseClockTime(tt.clock)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.InWindow(c))
		})
	}
}

func TestClockOf_TruncatesSeconds(t *testing.T) {
	p := testPolicy(t)
	c := ClockOf(at(t, p, "2025-01-07 17:00:59"), p.Location)
	assert.Equal(t, ClockTime{Hour: 17, Minute: 0}, c)
	assert.True(t, p.InWindow(c))
}

func TestClockOf_ConvertsZone(t *testing.T) {
	utc := time.Date(2025, 1, 7, 3, 30, 0, 0, time.UTC)
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	assert.Equal(t, ClockTime{Hour: 9, Minute: 0}, ClockOf(utc, kolkata))
	assert.Equal(t, ClockTime{Hour: 3, Minute: 30}, ClockOf(utc, time.UTC))
}

func TestPolicy_IsLate(t *testing.T) {
	p := testPolicy(t)

	assert.False(t, p.IsLate(at(t, p, "2025-01-07 09:59:00")))
	assert.False(t, p.IsLate(at(t, p, "2025-01-07 10:00:00")))
	assert.True(t, p.IsLate(at(t, p, "2025-01-07 10:00:01")))
	assert.True(t, p.IsLate(at(t, p, "2025-01-07 10:01:00")))

	assert.Equal(t, StatusLate, p.StatusAt(at(t, p, "2025-01-07 10:01:00")))
	assert.Equal(t, StatusPresent, p.StatusAt(at(t, p, "2025-01-07 09:30:00")))
}

func TestPolicy_MarkMessage(t *testing.T) {
	p := testPolicy(t)
	assert.Equal(t, "Marked as late (after 10:00 AM)", p.MarkMessage(StatusLate))
	assert.Equal(t, "Attendance marked successfully", p.MarkMessage(StatusPresent))
}

func TestPolicy_EndOfDay(t *testing.T) {
	p := testPolicy(t)

	checkIn := at(t, p, "2025-01-07 09:30:00")
	end := p.EndOfDay(checkIn, p.Location)
	assert.Equal(t, at(t, p, "2025-01-07 17:00:00"), end)

	closing := at(t, p, "2025-01-07 17:00:40")
	assert.Equal(t, closing, p.EndOfDay(closing, p.Location))
}

func TestPolicy_Day(t *testing.T) {
	p := testPolicy(t)

	// 20:00 UTC on the 6th is already the 7th in Kolkata.
	d := p.Day(time.Date(2025, 1, 6, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-01-07", DateKey(d))
	assert.Equal(t, 0, d.Hour())
}

func TestAccuracyBuffer(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.Equal(t, 30.0, AccuracyBuffer(nil))
	assert.Equal(t, 20.0, AccuracyBuffer(f(5)))
	assert.Equal(t, 45.0, AccuracyBuffer(f(45)))
	assert.Equal(t, 100.0, AccuracyBuffer(f(500)))
}

func TestAdmissionRadius_AddsBuffer(t *testing.T) {
	accuracy := 50.0
	allowed, buffer := AdmissionRadius(100, &accuracy)
	assert.Equal(t, 150.0, allowed)
	assert.Equal(t, 50.0, buffer)
}

func TestRecomputeWorkingHours(t *testing.T) {
	in := time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC)
	out := in.Add(7*time.Hour + 30*time.Minute)

	a := Attendance{CheckIn: &in}
	a.RecomputeWorkingHours()
	assert.Zero(t, a.WorkingHours)

	a.CheckOut = &out
	a.RecomputeWorkingHours()
	assert.Equal(t, 7.5, a.WorkingHours)
}

func TestSyntheticAbsenceID(t *testing.T) {
	d := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	id := SyntheticAbsenceID("u-1", d)
	assert.Equal(t, "absent-u-1-2025-01-07", id)
	assert.True(t, IsSyntheticAbsenceID(id))
	assert.False(t, IsSyntheticAbsenceID("0190a7a8-2b4e-7c1d-9f00-111111111111"))
}
