package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseInputDate(t *testing.T) {
	got, err := ParseInputDate(" 2024-01-08 ")
	if err != nil {
		t.Fatalf("ParseInputDate() error = %v", err)
	}
	if got != date(2024, time.January, 8) {
		t.Fatalf("ParseInputDate() = %v", got)
	}

	if _, err := ParseInputDate("08/01/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("ParseInputDate(malformed) error = %v", err)
	}
	if _, err := ParseInputDate(""); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("ParseInputDate(empty) error = %v", err)
	}
}

func TestFormatDates(t *testing.T) {
	d := date(2024, time.January, 8)
	if got := FormatInputDate(d); got != "2024-01-08" {
		t.Fatalf("FormatInputDate() = %q", got)
	}
	if got := FormatDisplayDate(d); got != "Mon, Jan 8, 2024" {
		t.Fatalf("FormatDisplayDate() = %q", got)
	}
}

func TestParseDependencyRefs(t *testing.T) {
	activities := []Activity{
		{ID: "a", Name: "A", Duration: 1},
		{ID: "b", Name: "B", Duration: 1},
		{ID: "c", Name: "C", Duration: 1},
	}

	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple list", "1, 3", []string{"a", "c"}},
		{"out of range dropped", "2, 9", []string{"b"}},
		{"non numeric dropped", "one, 2", []string{"b"}},
		{"zero and negative dropped", "0, -1, 1", []string{"a"}},
		{"empty input", "", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDependencyRefs(tc.input, activities)
			if len(got) != len(tc.want) {
				t.Fatalf("ParseDependencyRefs(%q) = %v, want %v", tc.input, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ParseDependencyRefs(%q) = %v, want %v", tc.input, got, tc.want)
				}
			}
		})
	}
}

func TestFormatDependencyRefs(t *testing.T) {
	activities := []Activity{
		{ID: "a", Name: "A", Duration: 1},
		{ID: "b", Name: "B", Duration: 1},
	}

	if got := FormatDependencyRefs([]string{"b", "a"}, activities); got != "2, 1" {
		t.Fatalf("FormatDependencyRefs() = %q", got)
	}
	// Stale IDs vanish from the rendering instead of breaking it.
	if got := FormatDependencyRefs([]string{"gone", "a"}, activities); got != "1" {
		t.Fatalf("FormatDependencyRefs() with stale id = %q", got)
	}
	if got := FormatDependencyRefs(nil, activities); got != "" {
		t.Fatalf("FormatDependencyRefs(nil) = %q", got)
	}
}
