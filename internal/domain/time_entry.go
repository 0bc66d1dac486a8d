package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateKeyLayout formats the calendar day used to group entries
const DateKeyLayout = "2006-01-02"

// TimeEntry represents one recorded work period in the domain model.
// This is a pure domain model without storage concerns.
type TimeEntry struct {
	ID            string
	Date          time.Time
	StartTime     time.Time
	EndTime       *time.Time
	BreakDuration int // minutes
	Project       string
	Notes         string
}

// NewID returns a fresh entry identifier.
func NewID() string {
	return uuid.NewString()
}

// NewTimeEntry creates a closed entry from start to end with the given break.
// The date is the calendar day of start.
func NewTimeEntry(start, end time.Time, breakMinutes int) TimeEntry {
	end = RollOverEnd(start, end)
	return TimeEntry{
		ID:            NewID(),
		Date:          StartOfDay(start),
		StartTime:     start,
		EndTime:       &end,
		BreakDuration: breakMinutes,
	}
}

// IsOpen returns true if the entry has no end time.
func (te TimeEntry) IsOpen() bool {
	return te.EndTime == nil
}

// ElapsedMinutes returns the span between start and end in minutes, or 0 for open entries.
func (te TimeEntry) ElapsedMinutes() float64 {
	if te.EndTime == nil {
		return 0
	}
	return te.EndTime.Sub(te.StartTime).Minutes()
}

// WorkedMinutes returns elapsed minutes minus the break, never below zero.
func (te TimeEntry) WorkedMinutes() float64 {
	if te.EndTime == nil {
		return 0
	}
	worked := te.ElapsedMinutes() - float64(te.BreakDuration)
	if worked < 0 {
		return 0
	}
	return worked
}

// WorkedHours returns WorkedMinutes expressed in hours.
func (te TimeEntry) WorkedHours() float64 {
	return te.WorkedMinutes() / 60
}

// DateKey returns the yyyy-MM-dd key of the entry's calendar day.
func (te TimeEntry) DateKey() string {
	return te.Date.Format(DateKeyLayout)
}

// StartOfDay truncates t to local midnight of its calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RollOverEnd moves an end that lies before start forward by one calendar day.
func RollOverEnd(start, end time.Time) time.Time {
	if end.Before(start) {
		return end.AddDate(0, 0, 1)
	}
	return end
}

// AtClock returns day with the hour and minute of clock.
func AtClock(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, day.Location())
}
