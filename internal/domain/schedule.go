package domain

import "time"

// Propagate recomputes every activity's start and end dates from the project
// start date and calendar mode. It is a pure function of its three inputs:
// the input slice is never mutated and the result is a fresh collection with
// all non-date fields untouched. Running it on its own output yields
// identical dates.
//
// Activities are visited in topological order of the valid dependency edges,
// so a dependency's freshly computed end date is always visible to its
// dependents even when the dependency sits later in the collection. Rows on a
// cycle, which the boundary validation should have rejected, are scheduled
// last in collection order from whatever end dates exist, keeping the pass
// terminating and total.
func Propagate(activities []Activity, projectStart time.Time, includeWeekends bool) []Activity {
	out := CloneActivities(activities)
	index := make(map[string]int, len(out))
	for i, a := range out {
		index[a.ID] = i
	}
	projectStart = NormalizeDate(projectStart)

	for _, i := range scheduleOrder(out, index) {
		scheduleActivity(&out[i], out, index, projectStart, includeWeekends)
	}
	return out
}

// EarliestStart computes the date floor for one activity: the project start
// when it has no resolvable dependency end date, otherwise the day after the
// latest dependency end, pushed off a weekend when weekends are excluded.
func EarliestStart(a Activity, activities []Activity, projectStart time.Time, includeWeekends bool) time.Time {
	index := make(map[string]int, len(activities))
	for i, other := range activities {
		index[other.ID] = i
	}
	return earliestStart(a, activities, index, NormalizeDate(projectStart), includeWeekends)
}

func earliestStart(a Activity, activities []Activity, index map[string]int, projectStart time.Time, includeWeekends bool) time.Time {
	var latestEnd *time.Time
	for _, depID := range a.DependsOn {
		if depID == a.ID {
			continue
		}
		depIdx, ok := index[depID]
		if !ok {
			continue
		}
		dep := activities[depIdx]
		if dep.EndDate == nil {
			continue
		}
		if latestEnd == nil || dep.EndDate.After(*latestEnd) {
			latestEnd = dep.EndDate
		}
	}
	if latestEnd == nil {
		return projectStart
	}
	start := AddCalendarDays(*latestEnd, 1)
	if !includeWeekends {
		start = SkipWeekend(start)
	}
	return start
}

// scheduleActivity derives one activity's dates in place. Dependencies
// strictly pin the start; a manual start on an unconstrained activity
// survives as long as it does not undercut the floor.
func scheduleActivity(a *Activity, activities []Activity, index map[string]int, projectStart time.Time, includeWeekends bool) {
	earliest := earliestStart(*a, activities, index, projectStart, includeWeekends)

	var start time.Time
	switch {
	case a.HasDependencies():
		start = earliest
	case a.StartDate == nil || a.StartDate.Before(earliest):
		start = earliest
	default:
		start = NormalizeDate(*a.StartDate)
	}

	start = NextAllowedWeekday(start, a.AllowedDays)
	if !includeWeekends {
		start = SkipWeekend(start)
	}

	var end time.Time
	if includeWeekends {
		end = AddCalendarDays(start, a.Duration-1)
	} else {
		end = AddBusinessDays(start, a.Duration-1)
	}

	a.StartDate = &start
	a.EndDate = &end
}

// scheduleOrder returns collection indices in topological order of the valid
// dependency edges (Kahn's algorithm), with collection order breaking ties.
// Indices left over by a cycle are appended in collection order.
func scheduleOrder(activities []Activity, index map[string]int) []int {
	n := len(activities)
	indegree := make([]int, n)
	dependents := make([][]int, n)
	for i, a := range activities {
		for _, depID := range a.DependsOn {
			depIdx, ok := index[depID]
			if !ok || depIdx == i {
				continue
			}
			dependents[depIdx] = append(dependents[depIdx], i)
			indegree[i]++
		}
	}

	order := make([]int, 0, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, j := range dependents[i] {
			indegree[j]--
			if indegree[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	if len(order) < n {
		scheduled := make([]bool, n)
		for _, i := range order {
			scheduled[i] = true
		}
		for i := 0; i < n; i++ {
			if !scheduled[i] {
				order = append(order, i)
			}
		}
	}
	return order
}
