// Package dates holds calendar-date arithmetic. Deadline comparisons are
// calendar-date comparisons, not instant comparisons.
package dates

import "time"

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the number of whole calendar days from `from` until `to`.
// Negative when `to` lies in the past. The count is taken over the calendar,
// so a daylight-saving transition between the two dates does not shift it.
func DaysUntil(from, to time.Time) int {
	f := DateOnly(from)
	t := DateOnly(to)
	fu := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(fu) / (24 * time.Hour))
}
