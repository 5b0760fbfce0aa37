package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("2025-07-01", "2025-07-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", w.StartDate())
	assert.Equal(t, "2025-07-03", w.EndDate())
	assert.False(t, w.SingleDay())

	single, err := ParseWindow("2025-07-01", "2025-07-01")
	require.NoError(t, err)
	assert.True(t, single.SingleDay())
}

func TestParseWindowRejectsMalformedDates(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"empty start", "", "2025-07-01"},
		{"empty end", "2025-07-01", ""},
		{"wrong format", "01.07.2025", "2025-07-03"},
		{"not a date", "2025-07-01", "tomorrow"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseWindow(tc.start, tc.end)
			assert.Error(t, err)
		})
	}
}

func TestWindowDates(t *testing.T) {
	w, err := ParseWindow("2025-06-29", "2025-07-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-29", "2025-06-30", "2025-07-01", "2025-07-02"}, w.Dates())
}

func TestWindowContainsIsInclusive(t *testing.T) {
	w, err := ParseWindow("2025-07-01", "2025-07-02")
	require.NoError(t, err)

	first := time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local)
	last := time.Date(2025, 7, 2, 23, 59, 59, 0, time.Local)
	before := time.Date(2025, 6, 30, 23, 59, 59, 0, time.Local)
	after := time.Date(2025, 7, 3, 0, 0, 0, 0, time.Local)

	assert.True(t, w.Contains(first))
	assert.True(t, w.Contains(last))
	assert.False(t, w.Contains(before))
	assert.False(t, w.Contains(after))
}
