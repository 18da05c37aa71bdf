package domain

import "testing"

func chainActivities() []Activity {
	// B depends on A, C depends on B.
	return []Activity{
		{ID: "a", Name: "A", Duration: 1},
		{ID: "b", Name: "B", Duration: 1, DependsOn: []string{"a"}},
		{ID: "c", Name: "C", Duration: 1, DependsOn: []string{"b"}},
	}
}

func TestHasCycle(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func([]Activity)
		fromID    string
		wantCycle bool
	}{
		{
			name:      "linear chain is acyclic",
			mutate:    func([]Activity) {},
			fromID:    "c",
			wantCycle: false,
		},
		{
			name: "closing the chain from the root cycles",
			mutate: func(as []Activity) {
				as[0].DependsOn = []string{"c"}
			},
			fromID:    "a",
			wantCycle: true,
		},
		{
			name: "self reference cycles",
			mutate: func(as []Activity) {
				as[1].DependsOn = []string{"b"}
			},
			fromID:    "b",
			wantCycle: true,
		},
		{
			name: "cycle elsewhere is visible from any member",
			mutate: func(as []Activity) {
				as[0].DependsOn = []string{"c"}
			},
			fromID:    "b",
			wantCycle: true,
		},
		{
			name: "dangling reference is not an edge",
			mutate: func(as []Activity) {
				as[2].DependsOn = append(as[2].DependsOn, "missing")
			},
			fromID:    "c",
			wantCycle: false,
		},
		{
			name:      "unknown start id",
			mutate:    func([]Activity) {},
			fromID:    "missing",
			wantCycle: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			as := chainActivities()
			tc.mutate(as)
			if got := HasCycle(tc.fromID, as); got != tc.wantCycle {
				t.Fatalf("HasCycle(%q) = %v, want %v", tc.fromID, got, tc.wantCycle)
			}
		})
	}
}

func TestHasCycleDiamondIsAcyclic(t *testing.T) {
	// D depends on B and C, which both depend on A. Shared ancestry is not a
	// cycle.
	as := []Activity{
		{ID: "a", Name: "A", Duration: 1},
		{ID: "b", Name: "B", Duration: 1, DependsOn: []string{"a"}},
		{ID: "c", Name: "C", Duration: 1, DependsOn: []string{"a"}},
		{ID: "d", Name: "D", Duration: 1, DependsOn: []string{"b", "c"}},
	}
	if HasCycle("d", as) {
		t.Fatal("diamond dependency graph reported as cyclic")
	}
}
