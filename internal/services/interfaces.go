package services

import (
	"context"
	"time"

	"worktime/internal/domain"
)

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

// DayGroup holds the entries of one calendar day
type DayGroup struct {
	Key     string // yyyy-MM-dd
	Date    time.Time
	Entries []domain.TimeEntry
}

// DaySummary is a DayGroup with its worked hours
type DaySummary struct {
	DayGroup
	WorkedHours float64
}

// EntryStore owns the ordered list of time entries and writes every change through to storage
type EntryStore interface {
	// Load replaces the in-memory list with the persisted one
	Load(ctx context.Context) error

	List() []domain.TimeEntry
	Get(id string) (domain.TimeEntry, error)

	Append(ctx context.Context, entry domain.TimeEntry) error
	Update(ctx context.Context, entry domain.TimeEntry) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, entries []domain.TimeEntry) error
}

// SessionTracker owns the current work session
type SessionTracker interface {
	Load(ctx context.Context) error

	// StartWork begins a new session, overwriting any running one
	StartWork(ctx context.Context) (domain.Session, error)
	// ToggleBreak returns errors.ErrNoActiveSession when idle
	ToggleBreak(ctx context.Context) (bool, error)
	// StopWork appends the finished entry to the EntryStore. It returns
	// errors.ErrNoActiveSession when idle.
	StopWork(ctx context.Context) (domain.TimeEntry, error)
	// Replace stores s as the current session
	Replace(ctx context.Context, s domain.Session) error

	Current() domain.Session
	ElapsedWorkedSeconds(now time.Time) int64
}

// ReportingService aggregates entries for display and export
type ReportingService interface {
	WorkedMinutes(entry domain.TimeEntry) float64
	TotalWorkedHours(entries []domain.TimeEntry) float64
	WorkedHoursOn(entries []domain.TimeEntry, day time.Time) float64

	GroupByCalendarDay(entries []domain.TimeEntry) []DayGroup
	SortForDisplay(entries []domain.TimeEntry) []domain.TimeEntry
	DaySummaries(entries []domain.TimeEntry) []DaySummary
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	Entries   EntryStore
	Session   SessionTracker
	Reporting ReportingService
}
