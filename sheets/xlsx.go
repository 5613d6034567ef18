package sheets

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/St3r30X/any-bot/grid"
)

// Workbook serves the roster from a local XLSX file. It exists for
// deployments where the shared sheet is synced to disk instead of sitting
// behind a gateway. One mutex serializes file access; the workbook is
// reopened per call so external edits are picked up.
type Workbook struct {
	path  string
	sheet string
	mu    sync.Mutex
}

// NewWorkbook creates a workbook-backed service reading the named sheet.
func NewWorkbook(path, sheet string) *Workbook {
	return &Workbook{path: path, sheet: sheet}
}

func (w *Workbook) Read(ctx context.Context) (grid.Grid, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("sheets: open %s: %w", w.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("sheets: rows of %q: %w", w.sheet, err)
	}

	g := make(grid.Grid, len(rows))
	for r, row := range rows {
		g[r] = make([]any, len(row))
		for c, v := range row {
			g[r][c] = v
		}
	}
	return g, nil
}

// WriteCell stores the value through excelize's typed setter, which is the
// workbook-file equivalent of user-entered input: the cell keeps its style
// and the sheet decides how to present the value.
func (w *Workbook) WriteCell(ctx context.Context, addr, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("sheets: open %s: %w", w.path, err)
	}
	defer f.Close()

	if err := f.SetCellValue(w.sheet, addr, value); err != nil {
		return fmt.Errorf("sheets: set %s: %w", addr, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("sheets: save %s: %w", w.path, err)
	}
	return nil
}
