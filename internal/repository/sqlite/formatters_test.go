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
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45Z",
		},
		{
			name:     "Zero time",
			input:    time.Time{},
			expected: "0001-01-01T00:00:00Z",
		},
		{
			name:     "Offset time is normalized to UTC",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T19:30:00Z",
		},
		{
			name:     "Nanoseconds are dropped",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2024-03-10T09:15:30Z",
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

	ts := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-01T08:00:00Z", FormatTimePtrForDB(&ts))
}

func TestParseTimeFromDB(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "UTC timestamp",
			input:    "2024-01-15T10:30:45Z",
			expected: time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "Offset timestamp",
			input:    "2024-06-15T14:30:00-05:00",
			expected: time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC),
		},
		{
			name:        "Not a timestamp",
			input:       "yesterday",
			expectError: true,
		},
		{
			name:        "Date only",
			input:       "2024-01-15",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimeFromDB(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
			assert.Equal(t, time.Local, result.Location())
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	day := time.Date(2025, 3, 9, 17, 45, 0, 0, time.Local)

	stored := FormatDateForDB(day)
	assert.Equal(t, "2025-03-09", stored)

	parsed, err := ParseDateFromDB(stored)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.Local), parsed)

	_, err = ParseDateFromDB("09/03/2025")
	assert.Error(t, err)
}
