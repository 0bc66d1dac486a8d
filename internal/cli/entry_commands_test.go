package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/huh"

	"worktime/internal/errors"
	"worktime/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand(t *testing.T) {
	f := setupTestApp(t)

	t.Run("empty store", func(t *testing.T) {
		out := f.mustRun(t, "list")
		assert.Contains(t, out, "Keine Einträge vorhanden.")
	})

	f.addEntry(t, "2024-03-01", "09:00", "17:00", "60", "Alpha")
	f.addEntry(t, "2024-03-04", "08:00", "16:30", "30", "Beta")

	t.Run("groups by day newest first", func(t *testing.T) {
		out := f.mustRun(t, "list")
		assert.Contains(t, out, "Gesamtarbeitszeit: 15.00 Stunden")
		monday := strings.Index(out, "Montag, 04. März 2024  (8h 0min)")
		friday := strings.Index(out, "Freitag, 01. März 2024  (7h 0min)")
		require.NotEqual(t, -1, monday)
		require.NotEqual(t, -1, friday)
		assert.Less(t, monday, friday)
		assert.Contains(t, out, "08:00 - 16:30 (Beta)  Pause: 30 Min. | Arbeitszeit: 8h 0min")
	})

	t.Run("day filter", func(t *testing.T) {
		out := f.mustRun(t, "list", "--day=today")
		assert.Contains(t, out, "Beta")
		assert.NotContains(t, out, "Alpha")

		out = f.mustRun(t, "list", "--day=01.03.2024")
		assert.Contains(t, out, "Alpha")
		assert.NotContains(t, out, "Beta")

		out = f.mustRun(t, "list", "--day=gestern")
		assert.Contains(t, out, "Keine Einträge vorhanden.")
	})

	t.Run("invalid day", func(t *testing.T) {
		_, err := f.run(t, "list", "--day=someday")
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestParseDayFlag(t *testing.T) {
	now := time.Date(2024, 3, 4, 15, 30, 0, 0, time.Local)
	tests := []struct {
		input string
		want  time.Time
	}{
		{"today", time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)},
		{"Heute", time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)},
		{"yesterday", time.Date(2024, 3, 3, 0, 0, 0, 0, time.Local)},
		{"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local)},
		{"29.02.2024", time.Date(2024, 2, 29, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDayFlag(tt.input, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", shortID("3f2a9c1e-0000-4000-8000-000000000000"))
	assert.Equal(t, "legacy", shortID("legacy"))
}

func TestAddCommand_Flags(t *testing.T) {
	f := setupTestApp(t)

	out := f.mustRun(t, "add", "--date=04.03.2024", "--start=08:00", "--end=16:30", "--break=30", "--project=Alpha", "--notes=Review")
	assert.Contains(t, out, "Eintrag gespeichert:")
	assert.Contains(t, out, "Montag, 04. März 2024")

	entries, err := f.api.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alpha", entries[0].Project)
	assert.Equal(t, "Review", entries[0].Notes)
	assert.Equal(t, 30, entries[0].BreakDuration)
	assert.InDelta(t, 8.0, entries[0].WorkedHours(), 0.001)

	t.Run("date defaults to today", func(t *testing.T) {
		f.mustRun(t, "add", "--start=18:00", "--project=Evening")
		entries, err := f.api.ListEntries(context.Background())
		require.NoError(t, err)
		var found bool
		for _, e := range entries {
			if e.Project == "Evening" {
				found = true
				assert.Equal(t, "2024-03-04", e.Date.Format(dayLayout))
				assert.True(t, e.IsOpen())
			}
		}
		assert.True(t, found)
	})

	t.Run("end before start rolls over", func(t *testing.T) {
		out := f.mustRun(t, "add", "--date=2024-03-05", "--start=22:00", "--end=02:00", "--project=Night")
		assert.Contains(t, out, "(+1 2024-03-06)")
	})

	t.Run("validation errors are listed", func(t *testing.T) {
		_, err := f.run(t, "add", "--start=25:99", "--end=7pm")
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "failed to save entry:\n  - "))
		assert.Equal(t, 2, strings.Count(err.Error(), "\n  - "))
	})
}

func TestAddCommand_NonInteractiveWithoutFlags(t *testing.T) {
	f := setupTestApp(t)
	_, err := f.run(t, "add")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestAddCommand_Form(t *testing.T) {
	f := setupTestApp(t)
	f.app.interactive = true

	cmd := NewAddCommand(f.app)
	var calls int
	var first validation.DraftInput
	cmd.runForm = func(ctx context.Context, input *validation.DraftInput) error {
		calls++
		if calls == 1 {
			first = *input
			input.End = "99:00"
			return nil
		}
		input.End = "12:00"
		input.Project = "Form"
		return nil
	}

	require.NoError(t, cmd.Execute(context.Background(), nil))
	assert.Equal(t, 2, calls, "invalid input shows the form again")
	assert.Equal(t, "2024-03-04", first.Date)
	assert.Equal(t, "08:00", first.Start)

	entries, err := f.api.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Form", entries[0].Project)
	assert.InDelta(t, 4.0, entries[0].WorkedHours(), 0.001)
}

func TestAddCommand_FormAborted(t *testing.T) {
	f := setupTestApp(t)
	f.app.interactive = true

	cmd := NewAddCommand(f.app)
	cmd.runForm = func(ctx context.Context, input *validation.DraftInput) error {
		return huh.ErrUserAborted
	}

	require.NoError(t, cmd.Execute(context.Background(), nil))
	entries, err := f.api.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEditCommand(t *testing.T) {
	f := setupTestApp(t)
	id := f.addEntry(t, "2024-03-04", "08:00", "16:00", "0", "Alpha")

	t.Run("flags change only named fields", func(t *testing.T) {
		f.mustRun(t, "edit", id[:4], "--project=Beta")
		entry, err := f.api.GetEntry(context.Background(), mustResolve(t, f, id))
		require.NoError(t, err)
		assert.Equal(t, "Beta", entry.Project)
		assert.Equal(t, "16:00", entry.EndTime.Format(clockLayout))
	})

	t.Run("form is prefilled", func(t *testing.T) {
		f.app.interactive = true
		defer func() { f.app.interactive = false }()

		cmd := NewEditCommand(f.app)
		var seen validation.DraftInput
		cmd.runForm = func(ctx context.Context, input *validation.DraftInput) error {
			seen = *input
			input.Break = "45"
			return nil
		}
		require.NoError(t, cmd.Execute(context.Background(), []string{id}))
		assert.Equal(t, "Beta", seen.Project)
		assert.Equal(t, "08:00", seen.Start)

		entry, err := f.api.GetEntry(context.Background(), mustResolve(t, f, id))
		require.NoError(t, err)
		assert.Equal(t, 45, entry.BreakDuration)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.run(t, "edit", "nope", "--project=X")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "time entry not found: nope")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := f.run(t, "edit", "--project=X")
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestDeleteCommand(t *testing.T) {
	t.Run("with --yes", func(t *testing.T) {
		f := setupTestApp(t)
		id := f.addEntry(t, "2024-03-04", "08:00", "16:00", "0", "Alpha")

		out := f.mustRun(t, "delete", "--yes", id)
		assert.Contains(t, out, "Eintrag gelöscht: "+id)
		entries, _ := f.api.ListEntries(context.Background())
		assert.Empty(t, entries)
	})

	t.Run("confirmation declined", func(t *testing.T) {
		f := setupTestApp(t)
		id := f.addEntry(t, "2024-03-04", "08:00", "16:00", "0", "Alpha")

		f.in.WriteString("n\n")
		out := f.mustRun(t, "delete", id)
		assert.Contains(t, out, "[y/N]")
		assert.Contains(t, out, "Delete cancelled.")
		entries, _ := f.api.ListEntries(context.Background())
		assert.Len(t, entries, 1)
	})

	t.Run("confirmation accepted", func(t *testing.T) {
		f := setupTestApp(t)
		id := f.addEntry(t, "2024-03-04", "08:00", "16:00", "0", "Alpha")

		f.in.WriteString("ja\n")
		f.mustRun(t, "delete", id)
		entries, _ := f.api.ListEntries(context.Background())
		assert.Empty(t, entries)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := setupTestApp(t)
		_, err := f.run(t, "delete", "-y", "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestResolveEntryID(t *testing.T) {
	f := setupTestApp(t)
	f.addEntry(t, "2024-03-04", "08:00", "12:00", "0", "A")
	f.addEntry(t, "2024-03-04", "13:00", "17:00", "0", "B")

	entries, err := f.api.ListEntries(context.Background())
	require.NoError(t, err)
	full := entries[0].ID

	got, err := resolveEntryID(context.Background(), f.api, full)
	require.NoError(t, err)
	assert.Equal(t, full, got)

	got, err = resolveEntryID(context.Background(), f.api, shortID(full))
	require.NoError(t, err)
	assert.Equal(t, full, got)

	_, err = resolveEntryID(context.Background(), f.api, "")
	assert.Error(t, err)

	_, err = resolveEntryID(context.Background(), f.api, "zzzz")
	assert.True(t, errors.IsNotFound(err))
}

func mustResolve(t *testing.T, f *cliFixture, ref string) string {
	t.Helper()
	id, err := resolveEntryID(context.Background(), f.api, ref)
	require.NoError(t, err)
	return id
}
