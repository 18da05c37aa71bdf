package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewActivity(t *testing.T) {
	cases := []struct {
		name    string
		input   ActivityInput
		wantErr error
	}{
		{"valid", ActivityInput{ID: "a1", Name: "Dig foundation", Duration: 3}, nil},
		{"missing id", ActivityInput{Name: "Dig foundation", Duration: 3}, ErrInvalidID},
		{"blank name", ActivityInput{ID: "a1", Name: "   ", Duration: 3}, ErrInvalidName},
		{"zero duration", ActivityInput{ID: "a1", Name: "Dig foundation", Duration: 0}, ErrInvalidDuration},
		{"negative duration", ActivityInput{ID: "a1", Name: "Dig foundation", Duration: -2}, ErrInvalidDuration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewActivity(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("NewActivity() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewActivityNormalizesDependencies(t *testing.T) {
	a, err := NewActivity(ActivityInput{
		ID:        "a1",
		Name:      "Frame walls",
		Duration:  2,
		DependsOn: []string{" b2 ", "b2", "", "c3"},
	})
	if err != nil {
		t.Fatalf("NewActivity() error = %v", err)
	}
	want := []string{"b2", "c3"}
	if len(a.DependsOn) != len(want) {
		t.Fatalf("DependsOn = %v, want %v", a.DependsOn, want)
	}
	for i := range want {
		if a.DependsOn[i] != want[i] {
			t.Fatalf("DependsOn = %v, want %v", a.DependsOn, want)
		}
	}
}

func TestActivitySetDependenciesClearsStartDate(t *testing.T) {
	start := date(2024, time.January, 10)
	a := Activity{ID: "a1", Name: "Pour slab", Duration: 1, StartDate: &start}

	a.SetDependencies([]string{"b2"})

	if a.StartDate != nil {
		t.Fatal("StartDate should be cleared when dependencies change")
	}
	if !a.HasDependencies() {
		t.Fatal("expected dependencies after SetDependencies")
	}
}

func TestActivityHasDependenciesCountsDanglingRefs(t *testing.T) {
	a := Activity{ID: "a1", Name: "Inspect", Duration: 1, DependsOn: []string{"gone"}}
	if !a.HasDependencies() {
		t.Fatal("a declared reference counts even when it resolves to nothing")
	}
}

func TestActivityRename(t *testing.T) {
	a := Activity{ID: "a1", Name: "Old", Duration: 1}
	if err := a.Rename("  New name  "); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if a.Name != "New name" {
		t.Fatalf("Name = %q", a.Name)
	}
	if err := a.Rename(" "); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Rename(blank) error = %v", err)
	}
}

func TestActivityCloneIsIndependent(t *testing.T) {
	start := date(2024, time.January, 2)
	end := date(2024, time.January, 4)
	a := Activity{
		ID:        "a1",
		Name:      "Roofing",
		Duration:  3,
		DependsOn: []string{"b2"},
		StartDate: &start,
		EndDate:   &end,
	}

	clone := a.Clone()
	clone.DependsOn[0] = "changed"
	*clone.StartDate = date(2030, time.June, 1)

	if a.DependsOn[0] != "b2" {
		t.Fatal("clone shares DependsOn backing array")
	}
	if !a.StartDate.Equal(start) {
		t.Fatal("clone shares StartDate pointer")
	}
}

func TestProjectDefaultsAndLookup(t *testing.T) {
	p := NewProject("  ", date(2024, time.January, 1))
	if p.Name != "Untitled project" {
		t.Fatalf("Name = %q", p.Name)
	}
	p.Activities = []Activity{{ID: "a1", Name: "First", Duration: 1}}

	got, ok := p.ActivityByID("a1")
	if !ok || got.Name != "First" {
		t.Fatalf("ActivityByID() = %+v, %v", got, ok)
	}
	if _, ok := p.ActivityByID("missing"); ok {
		t.Fatal("unexpected hit for missing id")
	}
	if err := p.Rename(""); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("Rename(blank) error = %v", err)
	}
}
