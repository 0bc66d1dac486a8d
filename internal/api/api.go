package api

import (
	"log/slog"
	"time"

	"worktime/internal/config"
	"worktime/internal/services"
)

// Status is a snapshot of the work session and today's totals
type Status struct {
	Now               time.Time
	Working           bool
	OnBreak           bool
	StartTime         *time.Time
	BreakStart        *time.Time
	TotalBreakMinutes int
	ElapsedSeconds    int64
	TodayHours        float64
}

// ExportResult describes a finished export
type ExportResult struct {
	Path    string
	Written bool
	Count   int
}

// ImportResult describes an imported state dump
type ImportResult struct {
	Entries int
	Working bool
}

// Options configures a BusinessAPI
type Options struct {
	Config *config.Config
	Logger *slog.Logger
	Clock  services.Clock
}
