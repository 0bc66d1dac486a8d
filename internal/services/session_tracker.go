package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/repository/sqlite"
)

// SessionOptions configures a SessionTracker
type SessionOptions struct {
	Clock          Clock
	FlushOpenBreak bool
	Logger         *slog.Logger
}

// sessionTrackerImpl implements the SessionTracker interface
type sessionTrackerImpl struct {
	repo           sqlite.Repository
	entries        EntryStore
	mapper         *domain.Mapper
	clock          Clock
	flushOpenBreak bool
	logger         *slog.Logger
	mu             sync.Mutex
	session        domain.Session
}

// NewSessionTracker creates a new SessionTracker. Finished sessions are appended to entries.
func NewSessionTracker(repo sqlite.Repository, entries EntryStore, opts SessionOptions) SessionTracker {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &sessionTrackerImpl{
		repo:           repo,
		entries:        entries,
		mapper:         domain.NewMapper(),
		clock:          clock,
		flushOpenBreak: opts.FlushOpenBreak,
		logger:         serviceLogger(opts.Logger, "session"),
	}
}

// Load reads the persisted session. Unreadable values fall back to an idle session.
func (t *sessionTrackerImpl) Load(ctx context.Context) error {
	working, err := t.readWorking(ctx)
	if err != nil {
		return err
	}
	session, err := t.readSession(ctx)
	if err != nil {
		return err
	}
	if working != session.IsActive() {
		t.logger.Warn("session_state_mismatch", "isWorking", working, "active", session.IsActive())
	}

	t.mu.Lock()
	t.session = session
	t.mu.Unlock()

	t.logger.Debug("session_loaded", "active", session.IsActive(), "onBreak", session.OnBreak())
	return nil
}

func (t *sessionTrackerImpl) readWorking(ctx context.Context) (bool, error) {
	record, err := t.repo.Get(ctx, sqlite.KeyIsWorking)
	if errors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	var working bool
	if err := json.Unmarshal([]byte(record.Value), &working); err != nil {
		t.warnParse(sqlite.KeyIsWorking, err)
		return false, nil
	}
	return working, nil
}

func (t *sessionTrackerImpl) readSession(ctx context.Context) (domain.Session, error) {
	record, err := t.repo.Get(ctx, sqlite.KeyCurrentSession)
	if errors.IsNotFound(err) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, err
	}
	var doc sqlite.SessionDocument
	if err := json.Unmarshal([]byte(record.Value), &doc); err != nil {
		t.warnParse(sqlite.KeyCurrentSession, err)
		return domain.Session{}, nil
	}
	session, err := t.mapper.Session.FromDatabase(doc)
	if err != nil {
		t.warnParse(sqlite.KeyCurrentSession, err)
		return domain.Session{}, nil
	}
	return session, nil
}

func (t *sessionTrackerImpl) warnParse(key string, cause error) {
	err := errors.NewParseError(key, cause)
	t.logger.Warn("stored_session_unreadable", "key", key, "error", err.Error())
}

// StartWork begins a new session at the current time
func (t *sessionTrackerImpl) StartWork(ctx context.Context) (domain.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session.IsActive() {
		t.logger.Debug("session_restarted", "previousStart", *t.session.StartTime)
	}

	var next domain.Session
	next.Start(t.clock())
	if err := t.commit(ctx, next); err != nil {
		return domain.Session{}, err
	}
	t.logger.Debug("work_started", "start", *next.StartTime)
	return next, nil
}

// ToggleBreak starts or ends a break
func (t *sessionTrackerImpl) ToggleBreak(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.session
	onBreak, err := next.ToggleBreak(t.clock())
	if err != nil {
		return false, err
	}
	if err := t.commit(ctx, next); err != nil {
		return false, err
	}
	t.logger.Debug("break_toggled", "onBreak", onBreak, "totalBreak", next.TotalBreakTime)
	return onBreak, nil
}

// StopWork finishes the session and appends the resulting entry
func (t *sessionTrackerImpl) StopWork(ctx context.Context) (domain.TimeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.session
	entry, ok := next.Stop(t.clock(), t.flushOpenBreak)
	if !ok {
		return domain.TimeEntry{}, errors.ErrNoActiveSession
	}
	if err := t.entries.Append(ctx, entry); err != nil {
		return domain.TimeEntry{}, err
	}
	if err := t.commit(ctx, next); err != nil {
		return domain.TimeEntry{}, err
	}
	t.logger.Debug("work_stopped", "id", entry.ID, "breakMinutes", entry.BreakDuration)
	return entry, nil
}

// Replace stores s as the current session
func (t *sessionTrackerImpl) Replace(ctx context.Context, s domain.Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !s.IsActive() {
		s = domain.Session{}
	}
	return t.commit(ctx, s)
}

// Current returns a snapshot of the session
func (t *sessionTrackerImpl) Current() domain.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// ElapsedWorkedSeconds returns the worked time of the running session at now
func (t *sessionTrackerImpl) ElapsedWorkedSeconds(now time.Time) int64 {
	return t.Current().ElapsedWorkedSeconds(now)
}

// commit persists both session keys and then adopts next
func (t *sessionTrackerImpl) commit(ctx context.Context, next domain.Session) error {
	working, err := json.Marshal(next.IsActive())
	if err != nil {
		return errors.NewStorageError("encode isWorking", err)
	}
	doc, err := json.Marshal(t.mapper.Session.ToDatabase(next))
	if err != nil {
		return errors.NewStorageError("encode currentSession", err)
	}
	if err := t.repo.Put(ctx, sqlite.KeyCurrentSession, string(doc)); err != nil {
		return err
	}
	if err := t.repo.Put(ctx, sqlite.KeyIsWorking, string(working)); err != nil {
		return err
	}
	t.session = next
	return nil
}
