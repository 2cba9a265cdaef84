package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateOnly(t *testing.T) {
	got, err := ParseDateOnly("2025-02-01")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseDateOnlyRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "01/02/2025", "2025-2-1", "2025-02-01T10:00:00Z", "not-a-date"} {
		_, err := ParseDateOnly(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("2025-03-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *got)

	_, err = ParseOptionalDate("15-03-2025")
	assert.Error(t, err)
}

func TestStartOfTodayUTC(t *testing.T) {
	// 23:30 in UTC+5 is already the next day locally; the day boundary
	// follows UTC
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2025, 6, 10, 23, 30, 0, 0, loc)

	got := StartOfTodayUTC(now)

	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), got)
}
