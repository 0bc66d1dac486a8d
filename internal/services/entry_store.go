package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/repository/sqlite"
)

// entryStoreImpl implements the EntryStore interface
type entryStoreImpl struct {
	repo    sqlite.Repository
	mapper  *domain.Mapper
	logger  *slog.Logger
	mu      sync.RWMutex
	entries []domain.TimeEntry
}

// NewEntryStore creates a new EntryStore instance. Call Load before use.
func NewEntryStore(repo sqlite.Repository, logger *slog.Logger) EntryStore {
	return &entryStoreImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
		logger: serviceLogger(logger, "entries"),
	}
}

// Load reads the persisted entries. A missing or undecodable value yields an empty list.
func (s *entryStoreImpl) Load(ctx context.Context) error {
	entries, err := s.read(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.logger.Debug("entries_loaded", "count", len(entries))
	return nil
}

func (s *entryStoreImpl) read(ctx context.Context) ([]domain.TimeEntry, error) {
	record, err := s.repo.Get(ctx, sqlite.KeyTimeEntries)
	if errors.IsNotFound(err) {
		return []domain.TimeEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var docs []sqlite.EntryDocument
	if err := json.Unmarshal([]byte(record.Value), &docs); err != nil {
		s.warnParse(err)
		return []domain.TimeEntry{}, nil
	}

	entries, err := s.mapper.TimeEntry.FromDatabaseSlice(docs)
	if err != nil {
		s.warnParse(err)
		return []domain.TimeEntry{}, nil
	}
	return entries, nil
}

func (s *entryStoreImpl) warnParse(cause error) {
	err := errors.NewParseError(sqlite.KeyTimeEntries, cause)
	s.logger.Warn("stored_entries_unreadable", "error", err.Error())
}

// List returns a copy of the entries in insertion order
func (s *entryStoreImpl) List() []domain.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.TimeEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given id
func (s *entryStoreImpl) Get(id string) (domain.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.entries[i], nil
	}
	return domain.TimeEntry{}, errors.NewNotFoundError("time entry", id)
}

// Append adds entry at the end of the list
func (s *entryStoreImpl) Append(ctx context.Context, entry domain.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = domain.NewID()
	}
	next := append(s.snapshot(), entry)
	return s.commit(ctx, next, "entry_appended", entry.ID)
}

// Update replaces the entry with the same id in place
func (s *entryStoreImpl) Update(ctx context.Context, entry domain.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(entry.ID)
	if i < 0 {
		return errors.NewNotFoundError("time entry", entry.ID)
	}
	next := s.snapshot()
	next[i] = entry
	return s.commit(ctx, next, "entry_updated", entry.ID)
}

// Delete removes the entry with the given id
func (s *entryStoreImpl) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("time entry", id)
	}
	next := s.snapshot()
	next = append(next[:i], next[i+1:]...)
	return s.commit(ctx, next, "entry_deleted", id)
}

// ReplaceAll swaps the whole list
func (s *entryStoreImpl) ReplaceAll(ctx context.Context, entries []domain.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.TimeEntry, len(entries))
	copy(next, entries)
	return s.commit(ctx, next, "entries_replaced", "")
}

// commit persists next and only then makes it the in-memory list
func (s *entryStoreImpl) commit(ctx context.Context, next []domain.TimeEntry, event, id string) error {
	data, err := json.Marshal(s.mapper.TimeEntry.ToDatabaseSlice(next))
	if err != nil {
		return errors.NewStorageError("encode entries", err)
	}
	if err := s.repo.Put(ctx, sqlite.KeyTimeEntries, string(data)); err != nil {
		return err
	}
	s.entries = next
	s.logger.Debug(event, "id", id, "count", len(next))
	return nil
}

func (s *entryStoreImpl) snapshot() []domain.TimeEntry {
	out := make([]domain.TimeEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *entryStoreImpl) indexOf(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
