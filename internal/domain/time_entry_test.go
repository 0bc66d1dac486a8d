package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestNewTimeEntry(t *testing.T) {
	start := at(2025, 3, 10, 9, 0)
	end := at(2025, 3, 10, 17, 0)

	result := NewTimeEntry(start, end, 30)

	_, err := uuid.Parse(result.ID)
	require.NoError(t, err)
	assert.Equal(t, at(2025, 3, 10, 0, 0), result.Date)
	assert.Equal(t, start, result.StartTime)
	require.NotNil(t, result.EndTime)
	assert.Equal(t, end, *result.EndTime)
	assert.Equal(t, 30, result.BreakDuration)
}

func TestNewTimeEntry_RollsOverEnd(t *testing.T) {
	result := NewTimeEntry(at(2025, 3, 10, 22, 0), at(2025, 3, 10, 2, 0), 0)
	assert.Equal(t, at(2025, 3, 11, 2, 0), *result.EndTime)
	assert.Equal(t, 240.0, result.WorkedMinutes())
}

func TestNewTimeEntry_UniqueIDs(t *testing.T) {
	a := NewTimeEntry(at(2025, 3, 10, 9, 0), at(2025, 3, 10, 10, 0), 0)
	b := NewTimeEntry(at(2025, 3, 10, 9, 0), at(2025, 3, 10, 10, 0), 0)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTimeEntry_IsOpen(t *testing.T) {
	open := TimeEntry{StartTime: at(2025, 3, 10, 9, 0)}
	closed := TimeEntry{StartTime: at(2025, 3, 10, 9, 0), EndTime: ptr(at(2025, 3, 10, 10, 0))}

	assert.True(t, open.IsOpen())
	assert.False(t, closed.IsOpen())
}

func TestTimeEntry_WorkedMinutes(t *testing.T) {
	tests := []struct {
		name     string
		entry    TimeEntry
		elapsed  float64
		expected float64
	}{
		{
			name:     "eight hours with half hour break",
			entry:    TimeEntry{StartTime: at(2025, 3, 10, 9, 0), EndTime: ptr(at(2025, 3, 10, 17, 0)), BreakDuration: 30},
			elapsed:  480,
			expected: 450,
		},
		{
			name:     "break longer than span is clamped",
			entry:    TimeEntry{StartTime: at(2025, 3, 10, 9, 0), EndTime: ptr(at(2025, 3, 10, 9, 10)), BreakDuration: 30},
			elapsed:  10,
			expected: 0,
		},
		{
			name:     "open entry counts nothing",
			entry:    TimeEntry{StartTime: at(2025, 3, 10, 9, 0), BreakDuration: 5},
			elapsed:  0,
			expected: 0,
		},
		{
			name:     "fractional minutes are kept",
			entry:    TimeEntry{StartTime: at(2025, 3, 10, 9, 0), EndTime: ptr(at(2025, 3, 10, 9, 0).Add(90 * time.Second))},
			elapsed:  1.5,
			expected: 1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.elapsed, tt.entry.ElapsedMinutes(), 1e-9)
			assert.InDelta(t, tt.expected, tt.entry.WorkedMinutes(), 1e-9)
			assert.InDelta(t, tt.expected/60, tt.entry.WorkedHours(), 1e-9)
		})
	}
}

func TestTimeEntry_DateKey(t *testing.T) {
	entry := TimeEntry{Date: at(2025, 1, 5, 0, 0)}
	assert.Equal(t, "2025-01-05", entry.DateKey())
}

func TestStartOfDay(t *testing.T) {
	assert.Equal(t, at(2025, 3, 10, 0, 0), StartOfDay(at(2025, 3, 10, 23, 59)))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(at(2025, 3, 10, 0, 0), at(2025, 3, 10, 23, 59)))
	assert.False(t, SameDay(at(2025, 3, 10, 23, 59), at(2025, 3, 11, 0, 0)))
}

func TestRollOverEnd(t *testing.T) {
	start := at(2025, 3, 10, 9, 0)
	assert.Equal(t, at(2025, 3, 10, 17, 0), RollOverEnd(start, at(2025, 3, 10, 17, 0)))
	assert.Equal(t, at(2025, 3, 11, 8, 0), RollOverEnd(start, at(2025, 3, 10, 8, 0)))
	assert.Equal(t, start, RollOverEnd(start, start))
}

func TestAtClock(t *testing.T) {
	day := at(2025, 3, 10, 0, 0)
	clock := time.Date(1, 1, 1, 14, 45, 33, 0, time.Local)
	assert.Equal(t, at(2025, 3, 10, 14, 45), AtClock(day, clock))
}
