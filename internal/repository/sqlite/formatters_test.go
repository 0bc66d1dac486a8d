package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "UTC time",
			input:    time.Date(2025, 6, 23, 14, 30, 0, 0, time.UTC),
			expected: "2025-06-23T14:30:00Z",
		},
		{
			name:     "Offset is converted to UTC",
			input:    time.Date(2025, 6, 23, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600)),
			expected: "2025-06-23T12:30:00Z",
		},
		{
			name:     "Sub-second precision is kept",
			input:    time.Date(2025, 6, 23, 14, 30, 0, 890000000, time.UTC),
			expected: "2025-06-23T14:30:00.89Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	ts := time.Date(2025, 6, 23, 8, 0, 0, 0, time.UTC)
	got := FormatTimePtrForDB(&ts)
	require.NotNil(t, got)
	assert.Equal(t, "2025-06-23T08:00:00Z", *got)
}

func TestParseTimeFromDB(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    time.Time
	}{
		{
			name:     "JavaScript ISO string",
			input:    "2025-06-23T09:47:24.890Z",
			expected: time.Date(2025, 6, 23, 9, 47, 24, 890000000, time.UTC),
		},
		{
			name:     "Offset form",
			input:    "2025-06-23T11:47:24+02:00",
			expected: time.Date(2025, 6, 23, 9, 47, 24, 0, time.UTC),
		},
		{
			name:        "Go String form is rejected",
			input:       "2025-06-23 11:47:24 +0100 BST",
			expectError: true,
		},
		{
			name:        "Empty",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeFromDB(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got))
			assert.Equal(t, time.Local, got.Location())
		})
	}
}

func TestParseTimePtrFromDB(t *testing.T) {
	got, err := ParseTimePtrFromDB(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := ""
	got, err = ParseTimePtrFromDB(&empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	bad := "soon"
	_, err = ParseTimePtrFromDB(&bad)
	assert.Error(t, err)
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2025, 1, 31, 23, 59, 59, 123456789, time.Local)
	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}
