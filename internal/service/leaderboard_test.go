package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"monday maps to itself",
			time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC), // Monday
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"wednesday maps back to monday",
			time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday belongs to the preceding monday",
			time.Date(2025, 6, 8, 23, 59, 59, 0, time.UTC),
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday midnight exactly",
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			"week crossing a month boundary",
			time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), // Thursday
			time.Date(2025, 4, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc input normalized",
			time.Date(2025, 6, 2, 1, 0, 0, 0, time.FixedZone("JST", 9*3600)), // Sunday 16:00 UTC
			time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, weekStart(tt.in))
		})
	}
}
