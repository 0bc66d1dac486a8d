package services

import (
	"log/slog"

	"worktime/internal/logging"
	"worktime/internal/repository/sqlite"
)

// NewServiceContainer wires the services around a single repository
func NewServiceContainer(repo sqlite.Repository, opts SessionOptions) *ServiceContainer {
	entries := NewEntryStore(repo, opts.Logger)
	return &ServiceContainer{
		Entries:   entries,
		Session:   NewSessionTracker(repo, entries, opts),
		Reporting: NewReportingService(),
	}
}

// serviceLogger tags l with the service name
func serviceLogger(l *slog.Logger, name string) *slog.Logger {
	return logging.OrDiscard(l).With("service", name)
}
