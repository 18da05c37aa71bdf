package app

import (
	"context"
	"time"

	"github.com/hylla/tidplan/internal/domain"
)

// DefaultProjectName names a project created before the user has renamed it.
const DefaultProjectName = "Untitled project"

// IDGenerator returns unique identifiers for new activities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service owns the in-memory project and runs a full propagation pass after
// every mutation, so the activities it hands out always carry resolved dates.
// Persistence is explicit: mutations mark the project dirty and Save writes
// it out.
type Service struct {
	store Store
	idGen IDGenerator
	clock Clock

	project domain.Project
	dirty   bool
}

// NewService constructs a new value for this package.
func NewService(store Store, idGen IDGenerator, clock Clock) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	s := &Service{
		store: store,
		idGen: idGen,
		clock: clock,
	}
	s.project = domain.NewProject(DefaultProjectName, clock())
	return s
}

// Project returns a deep copy of the current project.
func (s *Service) Project() domain.Project {
	return s.project.Clone()
}

// Dirty reports whether the project has unsaved changes.
func (s *Service) Dirty() bool {
	return s.dirty
}

// propagate recomputes all activity dates and marks the project dirty.
func (s *Service) propagate() {
	s.project.Activities = domain.Propagate(
		s.project.Activities, s.project.StartDate, s.project.IncludeWeekends)
	s.dirty = true
}

func (s *Service) index(id string) (int, error) {
	for i, a := range s.project.Activities {
		if a.ID == id {
			return i, nil
		}
	}
	return 0, ErrActivityNotFound
}

// AddActivityInput holds input values for add activity operations.
type AddActivityInput struct {
	Name        string
	Duration    int
	DependsOn   []string
	AllowedDays domain.WeekdaySet
}

// AddActivity validates and appends a new activity, then reschedules.
func (s *Service) AddActivity(in AddActivityInput) (domain.Activity, error) {
	activity, err := domain.NewActivity(domain.ActivityInput{
		ID:          s.idGen(),
		Name:        in.Name,
		Duration:    in.Duration,
		DependsOn:   in.DependsOn,
		AllowedDays: in.AllowedDays,
	})
	if err != nil {
		return domain.Activity{}, err
	}

	trial := append(domain.CloneActivities(s.project.Activities), activity)
	if domain.HasCycle(activity.ID, trial) {
		return domain.Activity{}, ErrDependencyCycle
	}

	s.project.Activities = append(s.project.Activities, activity)
	s.propagate()

	added, _ := s.project.ActivityByID(activity.ID)
	return added, nil
}

// RemoveActivity deletes an activity and strips references to it from every
// remaining dependency list, then reschedules.
func (s *Service) RemoveActivity(id string) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.project.Activities = append(
		s.project.Activities[:i], s.project.Activities[i+1:]...)

	for j := range s.project.Activities {
		a := &s.project.Activities[j]
		if !a.HasDependencies() {
			continue
		}
		kept := make([]string, 0, len(a.DependsOn))
		for _, depID := range a.DependsOn {
			if depID != id {
				kept = append(kept, depID)
			}
		}
		if len(kept) != len(a.DependsOn) {
			a.DependsOn = kept
		}
	}

	s.propagate()
	return nil
}

// UpdateActivityName renames an activity.
func (s *Service) UpdateActivityName(id, name string) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	if err := s.project.Activities[i].Rename(name); err != nil {
		return err
	}
	s.propagate()
	return nil
}

// SetDuration replaces an activity's day count and reschedules.
func (s *Service) SetDuration(id string, days int) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	if err := s.project.Activities[i].SetDuration(days); err != nil {
		return err
	}
	s.propagate()
	return nil
}

// SetAllowedDays replaces an activity's allowed-start-weekday constraint and
// reschedules.
func (s *Service) SetAllowedDays(id string, days domain.WeekdaySet) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.project.Activities[i].SetAllowedDays(days)
	s.propagate()
	return nil
}

// SetDependencies replaces an activity's dependency list after rejecting any
// assignment that would close a cycle, then reschedules.
func (s *Service) SetDependencies(id string, depIDs []string) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}

	trial := domain.CloneActivities(s.project.Activities)
	trial[i].SetDependencies(depIDs)
	if domain.HasCycle(id, trial) {
		return ErrDependencyCycle
	}

	s.project.Activities[i].SetDependencies(depIDs)
	s.propagate()
	return nil
}

// SetStartDate places a manual start date on an activity. The date must not
// fall on a weekend while weekends are excluded and must not undercut what
// the activity's dependencies allow.
func (s *Service) SetStartDate(id string, date time.Time) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	date = domain.NormalizeDate(date)

	if !s.project.IncludeWeekends && domain.IsWeekend(date) {
		return ErrWeekendStart
	}

	a := &s.project.Activities[i]
	if a.HasDependencies() {
		earliest := domain.EarliestStart(
			*a, s.project.Activities, s.project.StartDate, s.project.IncludeWeekends)
		if date.Before(earliest) {
			return ErrStartBeforeDependencies
		}
	}

	a.StartDate = &date
	s.propagate()
	return nil
}

// SetEndDate derives a new duration from the span between the activity's
// current start date and the given end date, measured in the active calendar
// mode, then reschedules. A span shorter than one day keeps the old duration.
func (s *Service) SetEndDate(id string, date time.Time) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	date = domain.NormalizeDate(date)

	a := &s.project.Activities[i]
	if a.StartDate == nil {
		return ErrStartDateUnset
	}
	if !s.project.IncludeWeekends && domain.IsWeekend(date) {
		return ErrWeekendEnd
	}
	if date.Before(*a.StartDate) {
		return ErrEndBeforeStart
	}

	var span int
	if s.project.IncludeWeekends {
		span = domain.CountCalendarDays(*a.StartDate, date)
	} else {
		span = domain.CountBusinessDays(*a.StartDate, date)
	}
	if span >= 1 {
		a.Duration = span
	}

	s.propagate()
	return nil
}

// SetProjectStartDate moves the whole schedule's baseline and reschedules.
func (s *Service) SetProjectStartDate(date time.Time) {
	s.project.StartDate = domain.NormalizeDate(date)
	s.propagate()
}

// SetIncludeWeekends switches between calendar-day and business-day
// arithmetic and reschedules under the new mode.
func (s *Service) SetIncludeWeekends(include bool) {
	s.project.IncludeWeekends = include
	s.propagate()
}

// RenameProject renames the project.
func (s *Service) RenameProject(name string) error {
	if err := s.project.Rename(name); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Load replaces the in-memory project with the persisted one. A missing or
// unreadable document yields a fresh empty project rather than an error, so
// startup always succeeds. The loaded schedule is recomputed immediately and
// the result counts as clean.
func (s *Service) Load(ctx context.Context) {
	project, ok, err := s.store.Load(ctx)
	if err != nil || !ok {
		s.project = domain.NewProject(DefaultProjectName, s.clock())
		s.dirty = false
		return
	}
	s.project = project
	s.propagate()
	s.dirty = false
}

// Save writes the current project out. The dirty flag clears only on
// success, so a failed save keeps the unsaved marker visible.
func (s *Service) Save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.project.Clone()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Clear drops the persisted document and resets the in-memory project to a
// fresh one.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.project = domain.NewProject(DefaultProjectName, s.clock())
	s.dirty = false
	return nil
}
