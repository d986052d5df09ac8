package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToDisplayShiftsToWIB(t *testing.T) {
	stored := time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC)

	local := ToDisplay(stored)

	assert.Equal(t, "WIB", local.Location().String())
	assert.Equal(t, 2, local.Day())
	assert.Equal(t, 1, local.Hour())
	assert.Equal(t, 30, local.Minute())
	assert.True(t, stored.Equal(local))
}

func TestLocalMidnightCrossesUTCDayBoundary(t *testing.T) {
	cases := []struct {
		name    string
		in      time.Time
		wantDay int
	}{
		{
			// 16:59:59 UTC is still 23:59:59 WIB the same day
			name:    "just before WIB midnight",
			in:      time.Date(2024, 1, 1, 16, 59, 59, 0, time.UTC),
			wantDay: 1,
		},
		{
			// 17:00 UTC rolls over to the next WIB day
			name:    "at WIB midnight",
			in:      time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC),
			wantDay: 2,
		},
		{
			name:    "late WIB evening",
			in:      time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC),
			wantDay: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LocalMidnight(tc.in)
			assert.Equal(t, tc.wantDay, got.Day())
			assert.Equal(t, time.January, got.Month())
			assert.Equal(t, 0, got.Hour())
			assert.Equal(t, 0, got.Minute())
			assert.Equal(t, "WIB", got.Location().String())
		})
	}
}

func TestLocalMidnightIsIdempotent(t *testing.T) {
	in := time.Date(2024, 3, 10, 8, 45, 12, 0, time.UTC)

	once := LocalMidnight(in)
	twice := LocalMidnight(once)

	assert.True(t, once.Equal(twice))
}
