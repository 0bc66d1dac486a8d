package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	require.NoError(t, err)
	return ts
}

func sampleEntries(t *testing.T) []domain.TimeEntry {
	t.Helper()
	closed := domain.NewTimeEntry(at(t, "2024-03-04 08:00"), at(t, "2024-03-04 16:30"), 30)
	closed.Project = "Kunde, A"
	closed.Notes = `Review "v2"`

	open := domain.TimeEntry{
		ID:        "open",
		Date:      domain.StartOfDay(at(t, "2024-03-05 09:00")),
		StartTime: at(t, "2024-03-05 09:00"),
	}
	return []domain.TimeEntry{closed, open}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", f.Extension())

	_, err = ParseFormat("xlsx")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestFileName(t *testing.T) {
	now := at(t, "2024-03-04 18:00")
	assert.Equal(t, "Arbeitszeiten_2024-03-04.csv", FileName("Arbeitszeiten", "csv", now))
	assert.Equal(t, "Timesheet_2024-03-04.pdf", FileName("Timesheet", "pdf", now))
}

func TestFormatRow(t *testing.T) {
	entries := sampleEntries(t)

	row := FormatRow(entries[0])
	assert.Equal(t, []string{"04.03.2024", "08:00", "16:30", "30", "Kunde, A", `Review "v2"`, "8.00"}, row.Fields())

	open := FormatRow(entries[1])
	assert.Empty(t, open.End)
	assert.Equal(t, "0.00", open.WorkedHours)
}

func TestFormatRow_ClampsNegativeWork(t *testing.T) {
	e := domain.NewTimeEntry(at(t, "2024-03-04 08:00"), at(t, "2024-03-04 08:15"), 60)
	assert.Equal(t, "0.00", FormatRow(e).WorkedHours)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleEntries(t), i18n.For(i18n.German))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Datum,Start,Ende,Pausen (Min),Projekt,Notizen,Arbeitszeit (Std)", lines[0])
	assert.Equal(t, `04.03.2024,08:00,16:30,30,"Kunde, A","Review ""v2""",8.00`, lines[1])
	assert.Equal(t, `05.03.2024,09:00,,0,"","",0.00`, lines[2])
}

func TestWriteCSV_English(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleEntries(t)[:1], i18n.For(i18n.English)))
	assert.True(t, strings.HasPrefix(buf.String(), "Date,Start,End,"))
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil, i18n.For(i18n.German))
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestWritePDF(t *testing.T) {
	entries := sampleEntries(t)
	before := entries[0]

	var buf bytes.Buffer
	err := WritePDF(&buf, entries, i18n.For(i18n.German), at(t, "2024-03-06 10:00"))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, before, entries[0], "entries are not mutated")
}

func TestWritePDF_ManyPages(t *testing.T) {
	var entries []domain.TimeEntry
	start := at(t, "2024-01-01 08:00")
	for i := 0; i < 120; i++ {
		day := start.AddDate(0, 0, i)
		e := domain.NewTimeEntry(day, day.Add(8*time.Hour), 30)
		e.Notes = strings.Repeat("lange Notiz ", 10)
		entries = append(entries, e)
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, entries, i18n.For(i18n.English), start))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWritePDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, []domain.TimeEntry{}, i18n.For(i18n.German), time.Now())
	assert.ErrorIs(t, err, ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestTotalHours(t *testing.T) {
	assert.InDelta(t, 8.0, totalHours(sampleEntries(t)), 0.0001)
	assert.Zero(t, totalHours(nil))
}
