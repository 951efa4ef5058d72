package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewBookingWindow(t *testing.T) {
	tests := []struct {
		name  string
		today string
		start string
		end   string
	}{
		{
			name:  "mid-january",
			today: "2025-01-15",
			start: "2025-01-15",
			end:   "2025-04-14",
		},
		{
			name:  "first of month",
			today: "2025-03-01",
			start: "2025-03-01",
			end:   "2025-05-31",
		},
		{
			name:  "end of november crosses year boundary",
			today: "2024-11-30",
			start: "2024-11-30",
			end:   "2025-02-27",
		},
		{
			name:  "end of december crosses year boundary",
			today: "2024-12-31",
			start: "2024-12-31",
			end:   "2025-03-30",
		},
		{
			name:  "late november lands on leap february",
			today: "2023-11-30",
			start: "2023-11-30",
			end:   "2024-02-28",
		},
		{
			name:  "end of may lands on a full-length august",
			today: "2025-05-31",
			start: "2025-05-31",
			end:   "2025-08-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewBookingWindow(date(tt.today))
			assert.Equal(t, date(tt.start), w.Start)
			assert.Equal(t, date(tt.end), w.End)
		})
	}
}

func TestNewBookingWindow_StripsTimeOfDay(t *testing.T) {
	now := time.Date(2025, 1, 15, 23, 59, 58, 0, time.UTC)
	w := NewBookingWindow(now)

	assert.Equal(t, date("2025-01-15"), w.Start)
	assert.Equal(t, date("2025-04-14"), w.End)
}

func TestNewBookingWindow_LocationIndependent(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)
	east := time.FixedZone("UTC+9", 9*60*60)

	t.Run("window built on a west-of-UTC server accepts today", func(t *testing.T) {
		w := NewBookingWindow(time.Date(2025, 1, 15, 10, 0, 0, 0, west))

		assert.Equal(t, date("2025-01-15"), w.Start)
		assert.True(t, w.Contains(date("2025-01-15")), "today parsed as UTC midnight is bookable")
	})

	t.Run("window built on an east-of-UTC server accepts the last day", func(t *testing.T) {
		w := NewBookingWindow(time.Date(2025, 1, 15, 10, 0, 0, 0, east))

		assert.Equal(t, date("2025-04-14"), w.End)
		assert.True(t, w.Contains(date("2025-04-14")), "inclusive window end parsed as UTC midnight is bookable")
	})

	t.Run("dates with a foreign location are compared by calendar day", func(t *testing.T) {
		w := NewBookingWindow(date("2025-01-15"))

		assert.True(t, w.Contains(time.Date(2025, 4, 14, 0, 0, 0, 0, east)))
		assert.False(t, w.Contains(time.Date(2025, 1, 14, 23, 0, 0, 0, west)))
	})
}

func TestBookingWindow_Contains(t *testing.T) {
	w := NewBookingWindow(date("2025-01-15"))

	assert.True(t, w.Contains(date("2025-01-15")), "first day is bookable")
	assert.True(t, w.Contains(date("2025-04-14")), "last day is bookable")
	assert.True(t, w.Contains(date("2025-02-20")))

	assert.False(t, w.Contains(date("2025-01-14")), "yesterday is not bookable")
	assert.False(t, w.Contains(date("2025-04-15")), "day after the window is not bookable")
}

func TestBookingWindow_Clamp(t *testing.T) {
	w := NewBookingWindow(date("2025-01-15"))

	t.Run("zero bounds keep the full window", func(t *testing.T) {
		start, end, ok := w.Clamp(time.Time{}, time.Time{})
		require.True(t, ok)
		assert.Equal(t, w.Start, start)
		assert.Equal(t, w.End, end)
	})

	t.Run("inner range is kept as is", func(t *testing.T) {
		start, end, ok := w.Clamp(date("2025-02-01"), date("2025-02-28"))
		require.True(t, ok)
		assert.Equal(t, date("2025-02-01"), start)
		assert.Equal(t, date("2025-02-28"), end)
	})

	t.Run("range spilling over both ends is narrowed", func(t *testing.T) {
		start, end, ok := w.Clamp(date("2024-12-01"), date("2025-06-01"))
		require.True(t, ok)
		assert.Equal(t, w.Start, start)
		assert.Equal(t, w.End, end)
	})

	t.Run("range entirely before the window", func(t *testing.T) {
		_, _, ok := w.Clamp(date("2024-11-01"), date("2024-12-31"))
		assert.False(t, ok)
	})

	t.Run("range entirely after the window", func(t *testing.T) {
		_, _, ok := w.Clamp(date("2025-05-01"), date("2025-06-01"))
		assert.False(t, ok)
	})
}

func TestBookingWindow_Days(t *testing.T) {
	w := NewBookingWindow(date("2025-01-15"))
	days := w.Days()

	// 17 days of January + 28 of February + 31 of March + 14 of April
	require.Len(t, days, 90)
	assert.Equal(t, w.Start, days[0])
	assert.Equal(t, w.End, days[len(days)-1])
}
