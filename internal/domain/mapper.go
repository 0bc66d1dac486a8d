package domain

import (
	"fmt"

	"worktime/internal/repository/sqlite"
)

// TimeEntryMapper handles conversion between domain entries and stored documents.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a stored document.
func (m *TimeEntryMapper) ToDatabase(entry TimeEntry) sqlite.EntryDocument {
	return sqlite.EntryDocument{
		ID:            entry.ID,
		Date:          sqlite.FormatTimeForDB(entry.Date),
		StartTime:     sqlite.FormatTimeForDB(entry.StartTime),
		EndTime:       sqlite.FormatTimePtrForDB(entry.EndTime),
		BreakDuration: entry.BreakDuration,
		Project:       entry.Project,
		Notes:         entry.Notes,
	}
}

// FromDatabase converts a stored document to a domain TimeEntry.
// A document without a date takes the calendar day of its start.
func (m *TimeEntryMapper) FromDatabase(doc sqlite.EntryDocument) (TimeEntry, error) {
	start, err := sqlite.ParseTimeFromDB(doc.StartTime)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("entry %s startTime: %w", doc.ID, err)
	}
	end, err := sqlite.ParseTimePtrFromDB(doc.EndTime)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("entry %s endTime: %w", doc.ID, err)
	}

	date := StartOfDay(start)
	if doc.Date != "" {
		d, err := sqlite.ParseTimeFromDB(doc.Date)
		if err != nil {
			return TimeEntry{}, fmt.Errorf("entry %s date: %w", doc.ID, err)
		}
		date = StartOfDay(d)
	}

	id := doc.ID
	if id == "" {
		id = NewID()
	}

	breakMinutes := doc.BreakDuration
	if breakMinutes < 0 {
		breakMinutes = 0
	}

	return TimeEntry{
		ID:            id,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		BreakDuration: breakMinutes,
		Project:       doc.Project,
		Notes:         doc.Notes,
	}, nil
}

// ToDatabaseSlice converts a slice of domain entries to stored documents.
func (m *TimeEntryMapper) ToDatabaseSlice(entries []TimeEntry) []sqlite.EntryDocument {
	docs := make([]sqlite.EntryDocument, len(entries))
	for i, entry := range entries {
		docs[i] = m.ToDatabase(entry)
	}
	return docs
}

// FromDatabaseSlice converts stored documents to domain entries. The first
// malformed document fails the whole slice.
func (m *TimeEntryMapper) FromDatabaseSlice(docs []sqlite.EntryDocument) ([]TimeEntry, error) {
	entries := make([]TimeEntry, len(docs))
	for i, doc := range docs {
		entry, err := m.FromDatabase(doc)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}
	return entries, nil
}

// SessionMapper handles conversion between the domain session and its stored document.
type SessionMapper struct{}

// NewSessionMapper creates a new SessionMapper instance.
func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// ToDatabase converts a domain Session to a stored document.
func (m *SessionMapper) ToDatabase(s Session) sqlite.SessionDocument {
	return sqlite.SessionDocument{
		StartTime:      sqlite.FormatTimePtrForDB(s.StartTime),
		BreakStart:     sqlite.FormatTimePtrForDB(s.BreakStart),
		TotalBreakTime: s.TotalBreakTime,
	}
}

// FromDatabase converts a stored document to a domain Session.
// A break without a running work period is dropped.
func (m *SessionMapper) FromDatabase(doc sqlite.SessionDocument) (Session, error) {
	start, err := sqlite.ParseTimePtrFromDB(doc.StartTime)
	if err != nil {
		return Session{}, fmt.Errorf("session startTime: %w", err)
	}
	breakStart, err := sqlite.ParseTimePtrFromDB(doc.BreakStart)
	if err != nil {
		return Session{}, fmt.Errorf("session breakStart: %w", err)
	}
	if start == nil {
		return Session{}, nil
	}

	total := doc.TotalBreakTime
	if total < 0 {
		total = 0
	}
	return Session{StartTime: start, BreakStart: breakStart, TotalBreakTime: total}, nil
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	TimeEntry *TimeEntryMapper
	Session   *SessionMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		TimeEntry: NewTimeEntryMapper(),
		Session:   NewSessionMapper(),
	}
}
