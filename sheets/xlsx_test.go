package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testWorkbook(t *testing.T) *Workbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Roster"
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatal(err)
	}
	cells := map[string]string{
		"B2": "duty",
		"C2": "2024-09-05",
		"B3": "Ivanov Ivan Ivanovich",
		"C3": "day",
	}
	for addr, v := range cells {
		if err := f.SetCellValue(sheet, addr, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return NewWorkbook(path, sheet)
}

func TestWorkbookRead(t *testing.T) {
	w := testWorkbook(t)
	g, err := w.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Cell(1, 2); got != "2024-09-05" {
		t.Errorf("header cell = %q", got)
	}
	if got := g.Cell(2, 1); got != "Ivanov Ivan Ivanovich" {
		t.Errorf("name cell = %q", got)
	}
}

func TestWorkbookWriteCell(t *testing.T) {
	w := testWorkbook(t)
	ctx := context.Background()

	if err := w.WriteCell(ctx, "C3", "night"); err != nil {
		t.Fatal(err)
	}

	g, err := w.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Cell(2, 2); got != "night" {
		t.Errorf("cell after write = %q, want night", got)
	}
}

func TestWorkbookMissingFile(t *testing.T) {
	w := NewWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"), "Roster")
	if _, err := w.Read(context.Background()); err == nil {
		t.Fatal("expected error for missing workbook")
	}
}
