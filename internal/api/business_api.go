package api

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"worktime/internal/config"
	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/export"
	"worktime/internal/i18n"
	"worktime/internal/logging"
	"worktime/internal/repository/sqlite"
	"worktime/internal/services"
	"worktime/internal/validation"
)

// BusinessAPI is the application controller used by the CLI
type BusinessAPI interface {
	// ========== Session Workflows ==========

	// StartWork begins a new session, replacing a running one
	StartWork(ctx context.Context) (*Status, error)

	// ToggleBreak starts or ends a break and reports whether one is running.
	// It returns errors.ErrNoActiveSession when idle.
	ToggleBreak(ctx context.Context) (bool, error)

	// StopWork finishes the session into a new entry.
	// It returns errors.ErrNoActiveSession when idle.
	StopWork(ctx context.Context) (*domain.TimeEntry, error)

	// Status computes the live view at now without changing state
	Status(now time.Time) *Status

	// ========== Entry Operations ==========

	// ListEntries returns all entries, newest day first
	ListEntries(ctx context.Context) ([]domain.TimeEntry, error)

	// ListDays groups entries by calendar day with per-day totals
	ListDays(ctx context.Context) ([]services.DaySummary, error)

	// TotalWorkedHours sums the worked hours of all closed entries
	TotalWorkedHours(ctx context.Context) float64

	GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error)

	// SaveEntry validates input and adds a new entry, or replaces the entry
	// with the given id keeping its identifier
	SaveEntry(ctx context.Context, input validation.DraftInput, id string) (*domain.TimeEntry, error)

	DeleteEntry(ctx context.Context, id string) error

	// ========== Export and Import ==========

	// Export writes all entries to dir. An empty dir uses the configured one.
	// With no entries nothing is written and Written is false.
	Export(ctx context.Context, format export.Format, dir string, now time.Time) (*ExportResult, error)

	// ImportState replaces all state with a JSON dump of the three store keys
	ImportState(ctx context.Context, r io.Reader) (*ImportResult, error)

	// Reload rereads the store, picking up writes by other processes
	Reload(ctx context.Context) error

	Labels() i18n.Labels
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	config    *config.Config
	services  *services.ServiceContainer
	validator *validation.EntryValidator
	mapper    *domain.Mapper
	labels    i18n.Labels
	clock     services.Clock
	logger    *slog.Logger
}

// NewBusinessAPI creates a BusinessAPI over repo and loads the stored state
func NewBusinessAPI(ctx context.Context, repo sqlite.Repository, opts Options) (BusinessAPI, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := logging.OrDiscard(opts.Logger)

	b := &businessAPIImpl{
		config: cfg,
		services: services.NewServiceContainer(repo, services.SessionOptions{
			Clock:          clock,
			FlushOpenBreak: cfg.Session.FlushOpenBreak,
			Logger:         logger,
		}),
		validator: validation.NewEntryValidatorWithConfig(cfg),
		mapper:    domain.NewMapper(),
		labels:    i18n.For(i18n.ParseLanguage(cfg.Locale.Language)),
		clock:     clock,
		logger:    logger,
	}
	if err := b.Reload(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// ========== Session Workflows ==========

func (b *businessAPIImpl) StartWork(ctx context.Context) (*Status, error) {
	if _, err := b.services.Session.StartWork(ctx); err != nil {
		return nil, err
	}
	return b.Status(b.clock()), nil
}

func (b *businessAPIImpl) ToggleBreak(ctx context.Context) (bool, error) {
	return b.services.Session.ToggleBreak(ctx)
}

func (b *businessAPIImpl) StopWork(ctx context.Context) (*domain.TimeEntry, error) {
	entry, err := b.services.Session.StopWork(ctx)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("work_stopped", "id", entry.ID, "workedHours", entry.WorkedHours())
	return &entry, nil
}

func (b *businessAPIImpl) Status(now time.Time) *Status {
	s := b.services.Session.Current()
	return &Status{
		Now:               now,
		Working:           s.IsActive(),
		OnBreak:           s.OnBreak(),
		StartTime:         s.StartTime,
		BreakStart:        s.BreakStart,
		TotalBreakMinutes: s.TotalBreakTime,
		ElapsedSeconds:    s.ElapsedWorkedSeconds(now),
		TodayHours:        b.services.Reporting.WorkedHoursOn(b.services.Entries.List(), now),
	}
}

// ========== Entry Operations ==========

func (b *businessAPIImpl) ListEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	return b.services.Reporting.SortForDisplay(b.services.Entries.List()), nil
}

func (b *businessAPIImpl) ListDays(ctx context.Context) ([]services.DaySummary, error) {
	return b.services.Reporting.DaySummaries(b.services.Entries.List()), nil
}

func (b *businessAPIImpl) TotalWorkedHours(ctx context.Context) float64 {
	return b.services.Reporting.TotalWorkedHours(b.services.Entries.List())
}

func (b *businessAPIImpl) GetEntry(ctx context.Context, id string) (*domain.TimeEntry, error) {
	if id == "" {
		return nil, errors.NewInvalidInputError("id", id, "must not be empty")
	}
	entry, err := b.services.Entries.Get(id)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (b *businessAPIImpl) SaveEntry(ctx context.Context, input validation.DraftInput, id string) (*domain.TimeEntry, error) {
	// 1. Make sure an edited entry exists before validating
	if id != "" {
		if _, err := b.services.Entries.Get(id); err != nil {
			return nil, err
		}
	}

	// 2. Parse and validate
	draft, err := b.validator.ParseDraft(input)
	if err != nil {
		return nil, err
	}
	entry, err := b.validator.BuildEntry(draft, id)
	if err != nil {
		return nil, err
	}

	// 3. Persist
	if id == "" {
		err = b.services.Entries.Append(ctx, entry)
	} else {
		err = b.services.Entries.Update(ctx, entry)
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (b *businessAPIImpl) DeleteEntry(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewInvalidInputError("id", id, "must not be empty")
	}
	return b.services.Entries.Delete(ctx, id)
}

// ========== Export and Import ==========

func (b *businessAPIImpl) Export(ctx context.Context, format export.Format, dir string, now time.Time) (*ExportResult, error) {
	entries := b.services.Entries.List()
	if dir == "" {
		dir = b.config.Export.Dir
	}

	var (
		buf    bytes.Buffer
		err    error
		prefix = b.config.Export.Prefix
	)
	switch format {
	case export.FormatCSV:
		if prefix == "" {
			prefix = b.labels.CSVPrefix
		}
		err = export.WriteCSV(&buf, entries, b.labels)
	case export.FormatPDF:
		if prefix == "" {
			prefix = b.labels.PDFPrefix
		}
		err = export.WritePDF(&buf, entries, b.labels, now)
	default:
		return nil, errors.NewInvalidInputError("format", string(format), "must be csv or pdf")
	}
	if stderrors.Is(err, export.ErrNothingToExport) {
		return &ExportResult{}, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeStorage, "could not render export")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewStorageError("create export directory", err)
	}
	path := filepath.Join(dir, export.FileName(prefix, format.Extension(), now))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, errors.NewStorageError("write export file", err)
	}

	b.logger.Debug("exported", "format", string(format), "path", path, "entries", len(entries))
	return &ExportResult{Path: path, Written: true, Count: len(entries)}, nil
}

func (b *businessAPIImpl) ImportState(ctx context.Context, r io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInvalidInputError("import", "", err.Error())
	}
	state, err := decodeStateDump(data)
	if err != nil {
		return nil, err
	}

	entries, err := b.mapper.TimeEntry.FromDatabaseSlice(state.TimeEntries)
	if err != nil {
		return nil, errors.NewParseError(sqlite.KeyTimeEntries, err)
	}
	session, err := b.mapper.Session.FromDatabase(state.CurrentSession)
	if err != nil {
		return nil, errors.NewParseError(sqlite.KeyCurrentSession, err)
	}
	if state.IsWorking != session.IsActive() {
		b.logger.Warn("import_state_mismatch", "isWorking", state.IsWorking, "active", session.IsActive())
	}

	if err := b.services.Entries.ReplaceAll(ctx, entries); err != nil {
		return nil, err
	}
	if err := b.services.Session.Replace(ctx, session); err != nil {
		return nil, err
	}
	if err := b.Reload(ctx); err != nil {
		return nil, err
	}

	b.logger.Debug("state_imported", "entries", len(entries), "working", session.IsActive())
	return &ImportResult{Entries: len(entries), Working: session.IsActive()}, nil
}

func (b *businessAPIImpl) Reload(ctx context.Context) error {
	if err := b.services.Entries.Load(ctx); err != nil {
		return err
	}
	return b.services.Session.Load(ctx)
}

func (b *businessAPIImpl) Labels() i18n.Labels {
	return b.labels
}
