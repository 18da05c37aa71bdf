package domain

import "time"

// nextAllowedWeekdayBound caps the allowed-weekday search so a contradictory
// day set cannot hang a propagation pass.
const nextAllowedWeekdayBound = 366

// NormalizeDate strips any time-of-day component, pinning the date to
// midnight UTC. All calendar arithmetic in this package assumes normalized
// inputs and returns normalized outputs.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddCalendarDays returns date shifted by n days with no weekend awareness.
func AddCalendarDays(date time.Time, n int) time.Time {
	return NormalizeDate(date).AddDate(0, 0, n)
}

// AddBusinessDays advances one day at a time starting the day after date,
// counting only Monday through Friday, until n business days have been
// consumed. n = 0 returns date unchanged.
func AddBusinessDays(date time.Time, n int) time.Time {
	result := NormalizeDate(date)
	for added := 0; added < n; {
		result = result.AddDate(0, 0, 1)
		if !IsWeekend(result) {
			added++
		}
	}
	return result
}

// CountBusinessDays returns the inclusive count of Monday through Friday
// dates in [start, end]. An end before start counts nothing.
func CountBusinessDays(start, end time.Time) int {
	end = NormalizeDate(end)
	count := 0
	for current := NormalizeDate(start); !current.After(end); current = current.AddDate(0, 0, 1) {
		if !IsWeekend(current) {
			count++
		}
	}
	return count
}

// CountCalendarDays returns the inclusive count of dates in [start, end],
// zero when end precedes start.
func CountCalendarDays(start, end time.Time) int {
	start = NormalizeDate(start)
	end = NormalizeDate(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// SkipWeekend advances a Saturday or Sunday date to the following Monday;
// weekday dates pass through unchanged.
func SkipWeekend(date time.Time) time.Time {
	result := NormalizeDate(date)
	for IsWeekend(result) {
		result = result.AddDate(0, 0, 1)
	}
	return result
}

// NextAllowedWeekday advances date one day at a time until its weekday is a
// member of allowed. An empty set places no constraint and leaves the date
// unchanged. The search gives up after a year of steps and returns the date
// it reached, so an unsatisfiable set degrades instead of hanging.
func NextAllowedWeekday(date time.Time, allowed WeekdaySet) time.Time {
	if allowed.IsEmpty() {
		return NormalizeDate(date)
	}
	result := NormalizeDate(date)
	for steps := 0; !allowed.Has(result.Weekday()) && steps < nextAllowedWeekdayBound; steps++ {
		result = result.AddDate(0, 0, 1)
	}
	return result
}
