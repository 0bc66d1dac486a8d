// Package export renders time entries as CSV or PDF reports.
package export

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"worktime/internal/domain"
	"worktime/internal/errors"
)

// Format is an export file type
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

const (
	dateLayout     = "02.01.2006"
	clockLayout    = "15:04"
	fileDateLayout = "2006-01-02"
)

// ErrNothingToExport is returned for an empty entry list. Nothing is written.
var ErrNothingToExport = stderrors.New("nothing to export")

// ParseFormat accepts "csv" or "pdf" in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF:
		return f, nil
	}
	return "", errors.NewInvalidInputError("format", s, "must be csv or pdf")
}

// Extension returns the file extension without the dot
func (f Format) Extension() string {
	return string(f)
}

// FileName returns "<prefix>_<yyyy-MM-dd>.<ext>"
func FileName(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format(fileDateLayout), ext)
}

// Row is one formatted entry
type Row struct {
	Date        string
	Start       string
	End         string
	Break       string
	Project     string
	Notes       string
	WorkedHours string
}

// Fields returns the row in column order
func (r Row) Fields() []string {
	return []string{r.Date, r.Start, r.End, r.Break, r.Project, r.Notes, r.WorkedHours}
}

// FormatRow formats an entry for a report
func FormatRow(e domain.TimeEntry) Row {
	row := Row{
		Date:        e.Date.Format(dateLayout),
		Start:       e.StartTime.Format(clockLayout),
		Break:       strconv.Itoa(e.BreakDuration),
		Project:     e.Project,
		Notes:       e.Notes,
		WorkedHours: FormatHours(e.WorkedHours()),
	}
	if e.EndTime != nil {
		row.End = e.EndTime.Format(clockLayout)
	}
	return row
}

// FormatHours renders hours with two decimals
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

// totalHours sums the worked hours of closed entries
func totalHours(entries []domain.TimeEntry) float64 {
	var minutes float64
	for _, e := range entries {
		minutes += e.WorkedMinutes()
	}
	return minutes / 60
}
