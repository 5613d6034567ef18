package report

import (
	"strings"
	"testing"

	"github.com/St3r30X/any-bot/diff"
	"github.com/St3r30X/any-bot/grid"
)

var testGrid = grid.Grid{
	nil,
	{"", "duty", "2024-09-05", "2024-09-06", nil},
	{nil, "Ivanov Ivan Ivanovich", "day", "night", "x"},
	{nil, "Petrova Anna Sergeevna", "«night»", "", "y"},
}

var testDir = Directory{"Ivanov Ivan Ivanovich": "ivan"}

func TestComposeEmptyForNoChanges(t *testing.T) {
	c := Changes{Dir: testDir}
	if got := c.Compose(nil, testGrid); got != "" {
		t.Fatalf("compose(nil) = %q, want empty", got)
	}
}

func TestComposeFiltersHeaderRegion(t *testing.T) {
	c := Changes{Dir: testDir}
	changes := []diff.Change{
		{Row: 0, Col: 2, Old: "", New: "title"},
		{Row: 1, Col: 2, Old: "2024-09-05", New: "2024-09-07"},
	}
	if got := c.Compose(changes, testGrid); got != "" {
		t.Fatalf("header-region changes rendered: %q", got)
	}
}

func TestComposeGroupsByDateInFirstSeenOrder(t *testing.T) {
	c := Changes{Dir: testDir}
	changes := []diff.Change{
		{Row: 2, Col: 2, Old: "day", New: "night"},
		{Row: 2, Col: 3, Old: "night", New: "day"},
		{Row: 3, Col: 2, Old: "", New: "day"},
	}

	got := c.Compose(changes, testGrid)
	if got == "" {
		t.Fatal("expected output")
	}

	blocks := strings.Split(got, "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d (%q), want banner + 2 date blocks", len(blocks), got)
	}
	if blocks[0] != "Duty roster updated" {
		t.Errorf("banner = %q", blocks[0])
	}

	// Two changes on 2024-09-05 land in one block, in row-major order.
	first := strings.Split(blocks[1], "\n")
	if first[0] != "2024-09-05" {
		t.Errorf("first block date = %q", first[0])
	}
	if len(first) != 3 {
		t.Fatalf("first block lines = %v", first)
	}
	if !strings.HasPrefix(first[1], "Ivanov Ivan Ivanovich (@ivan):") {
		t.Errorf("line 1 = %q", first[1])
	}
	if !strings.HasPrefix(first[2], "Petrova Anna Sergeevna:") {
		t.Errorf("line 2 = %q", first[2])
	}

	second := strings.Split(blocks[2], "\n")
	if second[0] != "2024-09-06" {
		t.Errorf("second block date = %q", second[0])
	}
}

func TestComposeDisplayNormalization(t *testing.T) {
	c := Changes{Dir: testDir}
	changes := []diff.Change{
		{Row: 3, Col: 2, Old: "«NIGHT»", New: ""},
	}

	got := c.Compose(changes, testGrid)
	if !strings.Contains(got, "Night → —") {
		t.Fatalf("normalization missing in %q", got)
	}
}

func TestComposeUnknownDateBucket(t *testing.T) {
	c := Changes{Dir: testDir}
	changes := []diff.Change{
		{Row: 2, Col: 4, Old: "x", New: "z"},
	}

	got := c.Compose(changes, testGrid)
	if !strings.Contains(got, "unknown date") {
		t.Fatalf("change with unresolvable date dropped: %q", got)
	}
}
