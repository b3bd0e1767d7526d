package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	at := func(elapsed time.Duration) *time.Time {
		checkIn := now.Add(-elapsed)
		return &checkIn
	}

	tests := []struct {
		name        string
		lastCheckIn *time.Time
		expected    Status
	}{
		{name: "never checked in", lastCheckIn: nil, expected: StatusNever},
		{name: "just checked in", lastCheckIn: at(0), expected: StatusSafe},
		{name: "one hour ago", lastCheckIn: at(time.Hour), expected: StatusSafe},
		{name: "just under 24h", lastCheckIn: at(24*time.Hour - time.Second), expected: StatusSafe},
		{name: "exactly 24h", lastCheckIn: at(24 * time.Hour), expected: StatusWarning},
		{name: "36 hours ago", lastCheckIn: at(36 * time.Hour), expected: StatusWarning},
		{name: "just under 48h", lastCheckIn: at(48*time.Hour - time.Second), expected: StatusWarning},
		{name: "exactly 48h", lastCheckIn: at(48 * time.Hour), expected: StatusDanger},
		{name: "three days ago", lastCheckIn: at(72 * time.Hour), expected: StatusDanger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.lastCheckIn, now))
		})
	}
}

func TestStatusForFutureCheckIn(t *testing.T) {
	// Clock skew can put the stored timestamp slightly ahead of now; that is
	// still safe, not an error.
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ahead := now.Add(5 * time.Minute)

	assert.Equal(t, StatusSafe, StatusFor(&ahead, now))
}

func TestHoursSince(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, HoursSince(nil, now))

	checkIn := now.Add(-90 * time.Minute)
	hours := HoursSince(&checkIn, now)
	require.NotNil(t, hours)
	assert.InDelta(t, 1.5, *hours, 0.0001)
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-03-10", DayKey(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-10", DayKey(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)))
}

func TestDayKeyNormalizesToUTC(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 08:00 on the 11th in Tokyo is still the 10th in UTC, so both stamps
	// land in the same bucket.
	morningTokyo := time.Date(2025, 3, 11, 8, 0, 0, 0, tokyo)
	eveningUTC := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-10", DayKey(morningTokyo))
	assert.Equal(t, DayKey(eveningUTC), DayKey(morningTokyo))
}
