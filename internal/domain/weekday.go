package domain

import (
	"strings"
	"time"
)

// WeekdaySet is a set of permitted start weekdays. The zero value is the
// empty set, which places no constraint on when an activity may start.
type WeekdaySet uint8

// Has reports whether d is a member of the set.
func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether the set holds no weekday at all.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// With returns the set extended by d.
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

// weekdayOrder fixes Monday-first ordering for display output.
var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// weekdayTokens maps accepted day spellings to weekdays. Full names and
// three-letter abbreviations are recognized, case-insensitively.
var weekdayTokens = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
}

// ParseWeekdays builds a WeekdaySet from a comma-separated day list such as
// "Mon, Thursday". Unrecognized tokens are dropped rather than rejected.
func ParseWeekdays(input string) WeekdaySet {
	var set WeekdaySet
	for _, token := range strings.Split(input, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if day, ok := weekdayTokens[token]; ok {
			set = set.With(day)
		}
	}
	return set
}

// Days returns the members of the set in Monday-first order.
func (s WeekdaySet) Days() []time.Weekday {
	out := make([]time.Weekday, 0, 7)
	for _, day := range weekdayOrder {
		if s.Has(day) {
			out = append(out, day)
		}
	}
	return out
}

// Format renders the set as comma-separated three-letter day names in
// Monday-first order; the empty set renders as an empty string.
func (s WeekdaySet) Format() string {
	days := s.Days()
	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, day.String()[:3])
	}
	return strings.Join(names, ", ")
}
