package xlsx

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"pagu/internal/core"
	"pagu/internal/ingest"
	ports "pagu/internal/sheets"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "pagu.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestWorkbookReadSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"GRAND TOTAL": {{"NO", "Nama KPPN"}, {"1", "KPPN"}},
		"KAB BIREUN":  {{"NO", "PAGU"}, {"1", "Rp 1.000"}},
	}, []string{"GRAND TOTAL", "KAB BIREUN"})

	w := New(path)
	if w.Source() != path {
		t.Fatalf("unexpected source %q", w.Source())
	}

	titles, err := w.SheetTitles(context.Background())
	if err != nil {
		t.Fatalf("titles: %v", err)
	}
	if len(titles) != 2 || titles[0] != "GRAND TOTAL" || titles[1] != "KAB BIREUN" {
		t.Fatalf("unexpected titles: %v", titles)
	}

	rows, err := w.ReadSheet(context.Background(), "KAB BIREUN")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "Rp 1.000" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestWorkbookMissingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{"GRAND TOTAL": {{"NO"}}}, []string{"GRAND TOTAL"})
	_, err := New(path).ReadSheet(context.Background(), "LHOKSEUMAWE")
	if !errors.Is(err, ports.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestWorkbookMissingFile(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "absent.xlsx"))
	if _, err := w.SheetTitles(context.Background()); !errors.Is(err, ports.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if _, err := w.ReadSheet(context.Background(), "X"); !errors.Is(err, ports.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestWorkbookTrailingBlankColumn(t *testing.T) {
	header := make([]any, 0, ingest.RegionalSchema.Width())
	for _, c := range ingest.RegionalSchema.Columns {
		header = append(header, c)
	}
	row := []any{"1", "BIREUN", "521211", "Belanja Barang", "program a", "2024", "Rp 1.000",
		"100", "", "", "", "", "", "", "", "", "", "", "", "500"}
	path := writeWorkbook(t, map[string][][]any{"KAB BIREUN": {header, row}}, []string{"KAB BIREUN"})

	rows, err := New(path).ReadSheet(context.Background(), "KAB BIREUN")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows[0]) != 21 || len(rows[1]) != 20 {
		t.Fatalf("expected a trimmed data row, got widths %d and %d", len(rows[0]), len(rows[1]))
	}

	m, err := ingest.MapSheet(core.RegionBireun, rows)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	annual, dropped := ingest.BuildAnnual(m)
	if dropped != 0 || len(annual) != 1 || annual[0].Budget != 1000 || annual[0].Realized != 500 {
		t.Fatalf("annual=%+v dropped=%d", annual, dropped)
	}
}
