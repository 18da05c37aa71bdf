package export

import (
	"strings"
	"testing"
	"time"

	"github.com/hylla/tidplan/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleProject() domain.Project {
	p := domain.NewProject("Launch plan", date(2024, time.January, 1))
	p.Activities = []domain.Activity{
		{ID: "a", Name: "Design", Duration: 3},
		{ID: "b", Name: "Build <fast>", Duration: 2, DependsOn: []string{"a"}},
	}
	p.Activities = domain.Propagate(p.Activities, p.StartDate, p.IncludeWeekends)
	return p
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw     string
		want    Format
		wantErr bool
	}{
		{raw: "html", want: FormatHTML},
		{raw: " CSV ", want: FormatCSV},
		{raw: "Table", want: FormatTable},
		{raw: "pdf", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := Render(sampleProject(), FormatCSV)
	if err != nil {
		t.Fatalf("render csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "#,Activity,Days,Dependencies,Allowed days,Start,End" {
		t.Errorf("unexpected csv header %q", lines[0])
	}
	if lines[1] != "1,Design,3,,,2024-01-01,2024-01-03" {
		t.Errorf("unexpected first record %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2,Build <fast>,2,1,") {
		t.Errorf("unexpected second record %q", lines[2])
	}
	if !strings.Contains(lines[2], "2024-01-04,2024-01-05") {
		t.Errorf("dependent activity dates missing from %q", lines[2])
	}
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	out, err := Render(sampleProject(), FormatHTML)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(out, "<h1>Launch plan</h1>") {
		t.Error("project heading missing")
	}
	if !strings.Contains(out, "Build &lt;fast&gt;") {
		t.Error("activity name was not escaped")
	}
	if strings.Contains(out, "Build <fast>") {
		t.Error("raw activity name leaked into markup")
	}
	if !strings.Contains(out, "weekends excluded, starts Mon, Jan 1, 2024") {
		t.Error("scheduling summary missing")
	}
	if !strings.Contains(out, "<td>Mon, Jan 1, 2024</td>") {
		t.Error("display start date missing")
	}
}

func TestRenderTable(t *testing.T) {
	out, err := Render(sampleProject(), FormatTable)
	if err != nil {
		t.Fatalf("render table: %v", err)
	}
	for _, want := range []string{"Launch plan", "Design", "Build <fast>", "Mon, Jan 1, 2024"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(sampleProject(), Format("pdf")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
