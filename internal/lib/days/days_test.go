package days

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntil(t *testing.T) {
	base := time.Date(2026, time.August, 29, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same day",
			from: base,
			to:   base.Add(5 * time.Hour),
			want: 0,
		},
		{
			name: "next day just after midnight",
			from: base,
			to:   time.Date(2026, time.August, 30, 0, 1, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "thirty days ahead",
			from: base,
			to:   base.AddDate(0, 0, 30),
			want: 30,
		},
		{
			name: "past date is negative",
			from: base,
			to:   base.AddDate(0, 0, -3),
			want: -3,
		},
		{
			name: "month boundary",
			from: time.Date(2026, time.August, 31, 23, 0, 0, 0, time.UTC),
			to:   time.Date(2026, time.September, 1, 1, 0, 0, 0, time.UTC),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Until(tt.from, tt.to))
		})
	}
}
