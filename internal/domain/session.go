package domain

import (
	"time"

	"worktime/internal/errors"
)

// Session is the in-progress work period. The zero value is an idle session.
type Session struct {
	StartTime      *time.Time
	BreakStart     *time.Time
	TotalBreakTime int // minutes
}

// IsActive returns true while a work period is running.
func (s Session) IsActive() bool {
	return s.StartTime != nil
}

// OnBreak returns true while a break is running.
func (s Session) OnBreak() bool {
	return s.StartTime != nil && s.BreakStart != nil
}

// Start begins a new work period at now, discarding any previous state.
func (s *Session) Start(now time.Time) {
	s.StartTime = &now
	s.BreakStart = nil
	s.TotalBreakTime = 0
}

// ToggleBreak starts or ends a break at now and reports whether a break is running afterwards.
// Ending a break adds its length in whole minutes, rounded down.
func (s *Session) ToggleBreak(now time.Time) (bool, error) {
	if !s.IsActive() {
		return false, errors.ErrNoActiveSession
	}
	if s.BreakStart != nil {
		s.TotalBreakTime += wholeMinutes(now.Sub(*s.BreakStart))
		s.BreakStart = nil
		return false, nil
	}
	s.BreakStart = &now
	return true, nil
}

// Stop finalises the work period into an entry ending at now and resets the session.
// An open break is dropped unless flushOpenBreak is set. ok is false when idle.
func (s *Session) Stop(now time.Time, flushOpenBreak bool) (entry TimeEntry, ok bool) {
	if !s.IsActive() {
		return TimeEntry{}, false
	}

	breakMinutes := s.TotalBreakTime
	if flushOpenBreak && s.BreakStart != nil {
		breakMinutes += wholeMinutes(now.Sub(*s.BreakStart))
	}

	start := *s.StartTime
	end := RollOverEnd(start, now)
	entry = TimeEntry{
		ID:            NewID(),
		Date:          StartOfDay(start),
		StartTime:     start,
		EndTime:       &end,
		BreakDuration: breakMinutes,
	}

	*s = Session{}
	return entry, true
}

// ElapsedWorkedSeconds returns the worked time at now, excluding completed
// breaks and the running break. It never mutates the session.
func (s Session) ElapsedWorkedSeconds(now time.Time) int64 {
	if !s.IsActive() {
		return 0
	}
	worked := now.Sub(*s.StartTime) - time.Duration(s.TotalBreakTime)*time.Minute
	if s.BreakStart != nil {
		worked -= now.Sub(*s.BreakStart)
	}
	if worked < 0 {
		return 0
	}
	return int64(worked / time.Second)
}

func wholeMinutes(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}
