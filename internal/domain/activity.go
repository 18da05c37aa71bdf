package domain

import (
	"strings"
	"time"
)

// Activity is one schedulable unit of work. StartDate and EndDate are derived
// by the propagation pass and cache its last result; they are never
// authoritative scheduling intent.
type Activity struct {
	ID          string
	Name        string
	Duration    int
	DependsOn   []string
	AllowedDays WeekdaySet
	StartDate   *time.Time
	EndDate     *time.Time
}

// ActivityInput carries the caller-supplied fields for a new activity.
type ActivityInput struct {
	ID          string
	Name        string
	Duration    int
	DependsOn   []string
	AllowedDays WeekdaySet
}

// NewActivity validates input and constructs an activity with unresolved
// dates. Duration is a positive day count under the active calendar mode.
func NewActivity(in ActivityInput) (Activity, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)

	if in.ID == "" {
		return Activity{}, ErrInvalidID
	}
	if in.Name == "" {
		return Activity{}, ErrInvalidName
	}
	if in.Duration < 1 {
		return Activity{}, ErrInvalidDuration
	}

	return Activity{
		ID:          in.ID,
		Name:        in.Name,
		Duration:    in.Duration,
		DependsOn:   normalizeDependencyIDs(in.DependsOn),
		AllowedDays: in.AllowedDays,
	}, nil
}

// HasDependencies reports whether the activity declares any dependency,
// resolvable or not. A declared-but-dangling reference still pins the start
// to the earliest permissible date.
func (a Activity) HasDependencies() bool {
	return len(a.DependsOn) > 0
}

// Rename renames the activity.
func (a *Activity) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	a.Name = name
	return nil
}

// SetDuration replaces the day count the activity occupies.
func (a *Activity) SetDuration(days int) error {
	if days < 1 {
		return ErrInvalidDuration
	}
	a.Duration = days
	return nil
}

// SetDependencies replaces the dependency set and clears the start date so
// the next pass derives it from the new dependencies instead of preserving a
// stale manual override.
func (a *Activity) SetDependencies(ids []string) {
	a.DependsOn = normalizeDependencyIDs(ids)
	a.StartDate = nil
}

// SetAllowedDays replaces the allowed-start-weekday constraint.
func (a *Activity) SetAllowedDays(days WeekdaySet) {
	a.AllowedDays = days
}

// Clone returns a deep copy that shares no state with the receiver.
func (a Activity) Clone() Activity {
	out := a
	out.DependsOn = append([]string(nil), a.DependsOn...)
	if a.StartDate != nil {
		start := *a.StartDate
		out.StartDate = &start
	}
	if a.EndDate != nil {
		end := *a.EndDate
		out.EndDate = &end
	}
	return out
}

// normalizeDependencyIDs trims and de-duplicates IDs while preserving order.
func normalizeDependencyIDs(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, raw := range in {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
