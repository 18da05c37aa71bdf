package domain

import (
	"strings"
	"time"
)

// Project is the authoritative activity collection plus the project-level
// scheduling parameters. IncludeWeekends true means calendar-day arithmetic;
// false means business-day arithmetic with weekend skipping.
type Project struct {
	Name            string
	StartDate       time.Time
	IncludeWeekends bool
	Activities      []Activity
}

// NewProject constructs an empty project starting on the given date.
func NewProject(name string, start time.Time) Project {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled project"
	}
	return Project{
		Name:      name,
		StartDate: NormalizeDate(start),
	}
}

// Rename renames the project.
func (p *Project) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	p.Name = name
	return nil
}

// ActivityByID looks up one activity by its stable identifier.
func (p Project) ActivityByID(id string) (Activity, bool) {
	for _, a := range p.Activities {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return Activity{}, false
}

// IndexByID maps activity IDs to their current collection positions.
func (p Project) IndexByID() map[string]int {
	out := make(map[string]int, len(p.Activities))
	for i, a := range p.Activities {
		out[a.ID] = i
	}
	return out
}

// Clone returns a deep copy that shares no state with the receiver.
func (p Project) Clone() Project {
	out := p
	out.Activities = CloneActivities(p.Activities)
	return out
}

// CloneActivities deep-copies an activity collection.
func CloneActivities(activities []Activity) []Activity {
	out := make([]Activity, len(activities))
	for i, a := range activities {
		out[i] = a.Clone()
	}
	return out
}
