package domain

import (
	"testing"
	"time"

	"worktime/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestTimeEntryMapper_RoundTrip(t *testing.T) {
	mapper := NewTimeEntryMapper()
	entry := TimeEntry{
		ID:            "1f7c",
		Date:          at(2025, 3, 10, 0, 0),
		StartTime:     at(2025, 3, 10, 9, 0),
		EndTime:       ptr(at(2025, 3, 10, 17, 0)),
		BreakDuration: 30,
		Project:       "Alpha",
		Notes:         "review, planning",
	}

	doc := mapper.ToDatabase(entry)
	assert.Equal(t, sqlite.FormatTimeForDB(entry.StartTime), doc.StartTime)
	require.NotNil(t, doc.EndTime)

	back, err := mapper.FromDatabase(doc)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, back.ID)
	assert.True(t, entry.Date.Equal(back.Date))
	assert.True(t, entry.StartTime.Equal(back.StartTime))
	assert.True(t, entry.EndTime.Equal(*back.EndTime))
	assert.Equal(t, entry.BreakDuration, back.BreakDuration)
	assert.Equal(t, entry.Project, back.Project)
	assert.Equal(t, entry.Notes, back.Notes)
}

func TestTimeEntryMapper_FromDatabase(t *testing.T) {
	mapper := NewTimeEntryMapper()

	t.Run("browser document", func(t *testing.T) {
		doc := sqlite.EntryDocument{
			ID:        "abc",
			Date:      "2025-03-10T00:00:00.000Z",
			StartTime: "2025-03-10T08:00:00.000Z",
			EndTime:   nil,
		}
		entry, err := mapper.FromDatabase(doc)
		require.NoError(t, err)
		assert.True(t, entry.IsOpen())
		assert.Equal(t, time.Local, entry.StartTime.Location())
	})

	t.Run("missing date uses start day", func(t *testing.T) {
		entry, err := mapper.FromDatabase(sqlite.EntryDocument{ID: "x", StartTime: sqlite.FormatTimeForDB(at(2025, 3, 10, 9, 0))})
		require.NoError(t, err)
		assert.Equal(t, at(2025, 3, 10, 0, 0), entry.Date)
	})

	t.Run("missing id gets one", func(t *testing.T) {
		entry, err := mapper.FromDatabase(sqlite.EntryDocument{StartTime: sqlite.FormatTimeForDB(at(2025, 3, 10, 9, 0))})
		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
	})

	t.Run("negative break clamped", func(t *testing.T) {
		entry, err := mapper.FromDatabase(sqlite.EntryDocument{ID: "x", StartTime: sqlite.FormatTimeForDB(at(2025, 3, 10, 9, 0)), BreakDuration: -5})
		require.NoError(t, err)
		assert.Equal(t, 0, entry.BreakDuration)
	})

	t.Run("bad times fail", func(t *testing.T) {
		_, err := mapper.FromDatabase(sqlite.EntryDocument{ID: "x", StartTime: "nope"})
		assert.Error(t, err)
		_, err = mapper.FromDatabase(sqlite.EntryDocument{ID: "x", StartTime: "2025-03-10T08:00:00Z", EndTime: strPtr("later")})
		assert.Error(t, err)
	})
}

func TestTimeEntryMapper_Slices(t *testing.T) {
	mapper := NewTimeEntryMapper()
	entries := []TimeEntry{
		NewTimeEntry(at(2025, 3, 10, 9, 0), at(2025, 3, 10, 10, 0), 0),
		NewTimeEntry(at(2025, 3, 11, 9, 0), at(2025, 3, 11, 10, 0), 5),
	}

	docs := mapper.ToDatabaseSlice(entries)
	require.Len(t, docs, 2)

	back, err := mapper.FromDatabaseSlice(docs)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, entries[0].ID, back[0].ID)
	assert.Equal(t, entries[1].ID, back[1].ID)

	docs[1].StartTime = "garbage"
	_, err = mapper.FromDatabaseSlice(docs)
	assert.Error(t, err)
}

func TestSessionMapper(t *testing.T) {
	mapper := NewSessionMapper()

	t.Run("round trip", func(t *testing.T) {
		s := Session{StartTime: ptr(at(2025, 3, 10, 9, 0)), BreakStart: ptr(at(2025, 3, 10, 12, 0)), TotalBreakTime: 15}
		back, err := mapper.FromDatabase(mapper.ToDatabase(s))
		require.NoError(t, err)
		assert.True(t, s.StartTime.Equal(*back.StartTime))
		assert.True(t, s.BreakStart.Equal(*back.BreakStart))
		assert.Equal(t, 15, back.TotalBreakTime)
	})

	t.Run("idle", func(t *testing.T) {
		doc := mapper.ToDatabase(Session{})
		assert.Nil(t, doc.StartTime)
		assert.Nil(t, doc.BreakStart)
		back, err := mapper.FromDatabase(doc)
		require.NoError(t, err)
		assert.False(t, back.IsActive())
	})

	t.Run("break without start dropped", func(t *testing.T) {
		back, err := mapper.FromDatabase(sqlite.SessionDocument{BreakStart: strPtr("2025-03-10T12:00:00Z"), TotalBreakTime: 4})
		require.NoError(t, err)
		assert.Equal(t, Session{}, back)
	})

	t.Run("bad start fails", func(t *testing.T) {
		_, err := mapper.FromDatabase(sqlite.SessionDocument{StartTime: strPtr("x")})
		assert.Error(t, err)
	})
}

func TestNewMapper(t *testing.T) {
	m := NewMapper()
	assert.NotNil(t, m.TimeEntry)
	assert.NotNil(t, m.Session)
}
