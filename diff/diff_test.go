package diff

import (
	"testing"

	"github.com/St3r30X/any-bot/grid"
)

func TestDiffIdentity(t *testing.T) {
	g := grid.Grid{
		nil,
		{"", "duty", "2024-09-05"},
		{nil, "Ivanov Ivan Ivanovich", "day"},
	}
	if got := Diff(g, g); len(got) != 0 {
		t.Fatalf("diff(A, A) = %v, want empty", got)
	}
}

func TestDiffDetectsValueChange(t *testing.T) {
	prev := grid.Grid{
		nil,
		{"", "duty", "2024-09-05"},
		{nil, "Ivanov Ivan Ivanovich", "day"},
	}
	curr := grid.Grid{
		nil,
		{"", "duty", "2024-09-05"},
		{nil, "Ivanov Ivan Ivanovich", "night"},
	}

	got := Diff(prev, curr)
	want := []Change{{Row: 2, Col: 2, Old: "day", New: "night"}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("diff = %v, want %v", got, want)
	}
}

func TestDiffRowMajorOrder(t *testing.T) {
	prev := grid.Grid{
		{"a", "b"},
		{"c", "d"},
	}
	curr := grid.Grid{
		{"a", "B"},
		{"C", "D"},
	}

	got := Diff(prev, curr)
	want := []Change{
		{Row: 0, Col: 1, Old: "b", New: "B"},
		{Row: 1, Col: 0, Old: "c", New: "C"},
		{Row: 1, Col: 1, Old: "d", New: "D"},
	}
	if len(got) != len(want) {
		t.Fatalf("diff = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDiffRaggedGrids(t *testing.T) {
	prev := grid.Grid{
		{"a"},
	}
	curr := grid.Grid{
		{"a", ""},
		{"", "x"},
	}

	// The added empty cell is not a change; the new non-empty cell is.
	got := Diff(prev, curr)
	want := []Change{{Row: 1, Col: 1, Old: "", New: "x"}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("diff = %v, want %v", got, want)
	}
}

func TestDiffShrinkingGrid(t *testing.T) {
	prev := grid.Grid{
		{"a", "b"},
		{"c"},
	}
	curr := grid.Grid{
		{"a"},
	}

	got := Diff(prev, curr)
	want := []Change{
		{Row: 0, Col: 1, Old: "b", New: ""},
		{Row: 1, Col: 0, Old: "c", New: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("diff = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDiffNumericStringEquivalence(t *testing.T) {
	prev := grid.Grid{{float64(42)}}
	curr := grid.Grid{{"42"}}
	if got := Diff(prev, curr); len(got) != 0 {
		t.Fatalf("stringified-equal cells reported as changed: %v", got)
	}
}

func TestDiffAgainstNilPrevious(t *testing.T) {
	curr := grid.Grid{{"a"}}
	got := Diff(nil, curr)
	// The engine still reports cells; treating a first run as "do not
	// notify" is the caller's job.
	if len(got) != 1 {
		t.Fatalf("diff(nil, B) = %v, want one change", got)
	}
}
