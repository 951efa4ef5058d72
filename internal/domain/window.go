package domain

import (
	"time"

	"github.com/m04kA/SMC-AdsBookingService/pkg/types"
)

// BookingWindowMonths is the rolling horizon during which slot dates may be reserved
const BookingWindowMonths = 3

// BookingWindow is the inclusive date range currently open for reservation
type BookingWindow struct {
	Start time.Time
	End   time.Time
}

// NewBookingWindow computes the bookable window for the given server-clock
// "today": [today, today + 3 months - 1 day], both ends inclusive, date-only.
// When the shifted month is shorter than today's day-of-month, the shift is
// clamped to the last day of that month instead of spilling into the next one.
func NewBookingWindow(today time.Time) BookingWindow {
	start := types.DateOnly(today)
	return BookingWindow{
		Start: start,
		End:   addMonthsClamped(start, BookingWindowMonths).AddDate(0, 0, -1),
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := firstOfTarget.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(y, m+time.Month(months), d, 0, 0, 0, 0, t.Location())
}

// Contains reports whether the date falls inside the window (date-only comparison)
func (w BookingWindow) Contains(date time.Time) bool {
	d := types.DateOnly(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Clamp narrows an arbitrary requested range to the window.
// A zero from/to means "no bound on that side". ok is false when the
// requested range and the window do not overlap at all.
func (w BookingWindow) Clamp(from, to time.Time) (start, end time.Time, ok bool) {
	start = w.Start
	if !from.IsZero() && types.DateOnly(from).After(start) {
		start = types.DateOnly(from)
	}
	end = w.End
	if !to.IsZero() && types.DateOnly(to).Before(end) {
		end = types.DateOnly(to)
	}
	return start, end, !start.After(end)
}

// Days lists every day of the window in chronological order
func (w BookingWindow) Days() []time.Time {
	days := make([]time.Time, 0, 92)
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
