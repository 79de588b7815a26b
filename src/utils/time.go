package utils

import "time"

// DaysUntil counts the whole calendar days from now until the given day,
// ignoring the time of day on both ends. Expirations in the past count as
// zero rather than negative: an expired contract has no time value left.
func DaysUntil(now time.Time, day time.Time) int {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}
