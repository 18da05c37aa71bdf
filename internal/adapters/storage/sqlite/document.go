package sqlite

import (
	"github.com/hylla/tidplan/internal/domain"
)

// document is the serialized form of the project. Dates travel as ISO
// calendar-date strings and allowed days as the same comma-separated list
// the editing fields use, so the stored document stays hand-readable.
type document struct {
	Name            string           `json:"name"`
	StartDate       string           `json:"start_date"`
	IncludeWeekends bool             `json:"include_weekends"`
	Activities      []activityRecord `json:"activities"`
}

// activityRecord represents activity record data used by this package.
type activityRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Duration    int      `json:"duration"`
	DependsOn   []string `json:"depends_on,omitempty"`
	AllowedDays string   `json:"allowed_days,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
}

func encodeProject(p domain.Project) document {
	doc := document{
		Name:            p.Name,
		StartDate:       domain.FormatInputDate(p.StartDate),
		IncludeWeekends: p.IncludeWeekends,
		Activities:      make([]activityRecord, 0, len(p.Activities)),
	}
	for _, a := range p.Activities {
		doc.Activities = append(doc.Activities, encodeActivity(a))
	}
	return doc
}

func encodeActivity(a domain.Activity) activityRecord {
	rec := activityRecord{
		ID:          a.ID,
		Name:        a.Name,
		Duration:    a.Duration,
		DependsOn:   a.DependsOn,
		AllowedDays: a.AllowedDays.Format(),
	}
	if a.StartDate != nil {
		rec.StartDate = domain.FormatInputDate(*a.StartDate)
	}
	if a.EndDate != nil {
		rec.EndDate = domain.FormatInputDate(*a.EndDate)
	}
	return rec
}

func decodeProject(doc document) (domain.Project, error) {
	start, err := domain.ParseInputDate(doc.StartDate)
	if err != nil {
		return domain.Project{}, err
	}
	project := domain.NewProject(doc.Name, start)
	project.IncludeWeekends = doc.IncludeWeekends
	project.Activities = make([]domain.Activity, 0, len(doc.Activities))
	for _, rec := range doc.Activities {
		activity, err := decodeActivity(rec)
		if err != nil {
			return domain.Project{}, err
		}
		project.Activities = append(project.Activities, activity)
	}
	return project, nil
}

func decodeActivity(rec activityRecord) (domain.Activity, error) {
	activity, err := domain.NewActivity(domain.ActivityInput{
		ID:          rec.ID,
		Name:        rec.Name,
		Duration:    rec.Duration,
		DependsOn:   rec.DependsOn,
		AllowedDays: domain.ParseWeekdays(rec.AllowedDays),
	})
	if err != nil {
		return domain.Activity{}, err
	}
	if rec.StartDate != "" {
		start, err := domain.ParseInputDate(rec.StartDate)
		if err != nil {
			return domain.Activity{}, err
		}
		activity.StartDate = &start
	}
	if rec.EndDate != "" {
		end, err := domain.ParseInputDate(rec.EndDate)
		if err != nil {
			return domain.Activity{}, err
		}
		activity.EndDate = &end
	}
	return activity, nil
}
