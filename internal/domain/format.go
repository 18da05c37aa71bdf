package domain

import (
	"strconv"
	"strings"
	"time"
)

const (
	displayDateLayout = "Mon, Jan 2, 2006"
	inputDateLayout   = "2006-01-02"
)

// FormatDisplayDate renders a date for human-readable table cells.
func FormatDisplayDate(t time.Time) string {
	return t.Format(displayDateLayout)
}

// FormatInputDate renders a date in the ISO calendar-date form used by
// editable fields and serialized documents.
func FormatInputDate(t time.Time) string {
	return t.Format(inputDateLayout)
}

// ParseInputDate parses an ISO calendar date, normalized to midnight UTC.
func ParseInputDate(s string) (time.Time, error) {
	t, err := time.Parse(inputDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return NormalizeDate(t), nil
}

// ParseDependencyRefs converts a comma-separated list of 1-based display row
// numbers into activity IDs against the current collection. Non-numeric and
// non-positive tokens are discarded, as are row numbers beyond the
// collection.
func ParseDependencyRefs(input string, activities []Activity) []string {
	out := make([]string, 0)
	for _, token := range strings.Split(input, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil || n < 1 || n > len(activities) {
			continue
		}
		out = append(out, activities[n-1].ID)
	}
	return out
}

// FormatDependencyRefs renders dependency IDs as comma-separated 1-based
// display row numbers. IDs that no longer resolve to a row are omitted.
func FormatDependencyRefs(ids []string, activities []Activity) string {
	index := make(map[string]int, len(activities))
	for i, a := range activities {
		index[a.ID] = i
	}
	refs := make([]string, 0, len(ids))
	for _, id := range ids {
		i, ok := index[id]
		if !ok {
			continue
		}
		refs = append(refs, strconv.Itoa(i+1))
	}
	return strings.Join(refs, ", ")
}
