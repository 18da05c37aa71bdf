// Package export renders a scheduled project as HTML, CSV, or an ANSI table
// for use outside the interactive view.
package export

import (
	"encoding/csv"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hylla/tidplan/internal/domain"
)

// Format selects one export rendering.
type Format string

// Supported export renderings.
const (
	FormatHTML  Format = "html"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// ParseFormat maps a user-supplied format name onto a supported rendering.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatHTML, FormatCSV, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", raw)
	}
}

// Render renders the project's activity table in the requested format.
func Render(p domain.Project, format Format) (string, error) {
	switch format {
	case FormatHTML:
		return renderHTML(p), nil
	case FormatCSV:
		return renderCSV(p)
	case FormatTable:
		return renderTable(p), nil
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}

var columnHeaders = []string{"#", "Activity", "Days", "Dependencies", "Allowed days", "Start", "End"}

// row flattens one activity into export cells. CSV keeps machine-sortable
// ISO dates; the readable renderings use display dates.
func row(p domain.Project, i int, displayDates bool) []string {
	a := p.Activities[i]
	formatDate := domain.FormatInputDate
	if displayDates {
		formatDate = domain.FormatDisplayDate
	}
	start, end := "", ""
	if a.StartDate != nil {
		start = formatDate(*a.StartDate)
	}
	if a.EndDate != nil {
		end = formatDate(*a.EndDate)
	}
	return []string{
		strconv.Itoa(i + 1),
		a.Name,
		strconv.Itoa(a.Duration),
		domain.FormatDependencyRefs(a.DependsOn, p.Activities),
		a.AllowedDays.Format(),
		start,
		end,
	}
}

// summary describes the project-level scheduling parameters in one line.
func summary(p domain.Project) string {
	mode := "weekends excluded"
	if p.IncludeWeekends {
		mode = "weekends included"
	}
	return fmt.Sprintf("%s, starts %s", mode, domain.FormatDisplayDate(p.StartDate))
}

// renderHTML emits a standalone document with an inline-styled table.
func renderHTML(p domain.Project) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(p.Name))
	b.WriteString("<style>\n")
	b.WriteString("body { font-family: sans-serif; margin: 2rem; }\n")
	b.WriteString("table { border-collapse: collapse; }\n")
	b.WriteString("th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; text-align: left; }\n")
	b.WriteString("th { background: #eee; }\n")
	b.WriteString("</style>\n</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(p.Name))
	fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(summary(p)))
	b.WriteString("<table>\n<thead>\n<tr>")
	for _, h := range columnHeaders {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for i := range p.Activities {
		b.WriteString("<tr>")
		for _, cell := range row(p, i, true) {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</body>\n</html>\n")
	return b.String()
}

// renderCSV emits a header row plus one record per activity with ISO dates.
func renderCSV(p domain.Project) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(columnHeaders); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for i := range p.Activities {
		if err := w.Write(row(p, i, false)); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return b.String(), nil
}

// renderTable emits a bordered terminal table preceded by the project name
// and scheduling summary.
func renderTable(p domain.Project) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers(columnHeaders...).
		StyleFunc(func(r, _ int) lipgloss.Style {
			if r == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for i := range p.Activities {
		t.Row(row(p, i, true)...)
	}
	return p.Name + "\n" + summary(p) + "\n" + t.String() + "\n"
}
