// Package xlsx reads an exported budget workbook from a local .xlsx file.
//
// The file is reopened on every call so a workbook replaced on disk is
// picked up on the next refresh.
package xlsx

import (
	"context"
	"fmt"
	"os"

	ports "pagu/internal/sheets"

	"github.com/xuri/excelize/v2"
)

type Workbook struct {
	path string
}

var _ ports.WorkbookReader = (*Workbook)(nil)

func New(path string) *Workbook {
	return &Workbook{path: path}
}

func (w *Workbook) Source() string { return w.path }

func (w *Workbook) open() (*excelize.File, error) {
	if _, err := os.Stat(w.path); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrSourceUnavailable, err)
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ports.ErrSourceUnavailable, w.path, err)
	}
	return f, nil
}

func (w *Workbook) SheetTitles(_ context.Context) ([]string, error) {
	f, err := w.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ReadSheet returns the displayed cell text of every row.
func (w *Workbook) ReadSheet(_ context.Context, title string) ([][]any, error) {
	f, err := w.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(title); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrSheetNotFound, title)
	}
	rows, err := f.GetRows(title)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", title, err)
	}
	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out, nil
}
