package ingest

import (
	"errors"
	"fmt"

	"pagu/internal/core"
)

// Canonical column labels, in the order they appear in the source sheets.
const (
	ColNo          = "NO"
	ColOfficeName  = "Nama KPPN"
	ColCityName    = "NMKABKOTA"
	ColAccountCode = "KDAKUN"
	ColAccountName = "NMAKUN"
	ColProgram     = "PROGRAM PENGELOLAAN"
	ColYear        = "TAHUN"
	ColBudget      = "PAGU"
	ColRealized    = "Total"
	ColPercentage  = "PERSENTASE"
	ColDifference  = "Selisih"

	// ColExpenseType replaces ColAccountName once a sheet is mapped.
	ColExpenseType = "Jenis Belanja"

	monthColumnPrefix = "REALISASI "
)

var (
	ErrEmptySheet          = errors.New("sheet has no data rows")
	ErrSchemaMismatch      = errors.New("column count does not match expected layout")
	ErrMonthColumnsMissing = errors.New("monthly realization columns missing")
)

// Variant is one of the closed set of sheet layouts.
type Variant int

const (
	VariantGrandTotal Variant = iota + 1
	VariantRegional
)

func (v Variant) String() string {
	switch v {
	case VariantGrandTotal:
		return "grand-total"
	case VariantRegional:
		return "regional"
	default:
		return "unknown"
	}
}

// Schema is an ordered list of column labels. Position alone gives a
// column its meaning; header text in the sheet is never consulted.
type Schema struct {
	Variant Variant
	Columns []string
}

// MonthColumn returns the label of a month's realization column.
func MonthColumn(m core.Month) string {
	return monthColumnPrefix + m.Label()
}

func monthColumns() []string {
	out := make([]string, 0, 12)
	for _, m := range core.Months() {
		out = append(out, MonthColumn(m))
	}
	return out
}

var (
	GrandTotalSchema = Schema{
		Variant: VariantGrandTotal,
		Columns: []string{
			ColNo, ColOfficeName, ColAccountCode, ColAccountName, ColProgram,
			ColYear, ColBudget, ColRealized, ColPercentage, ColDifference,
		},
	}

	RegionalSchema = Schema{
		Variant: VariantRegional,
		Columns: concat(
			[]string{ColNo, ColCityName, ColAccountCode, ColAccountName, ColProgram, ColYear, ColBudget},
			monthColumns(),
			[]string{ColRealized, ColPercentage},
		),
	}

	schemas = []Schema{GrandTotalSchema, RegionalSchema}
)

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func (s Schema) Width() int { return len(s.Columns) }

// Match returns the layout whose width equals columnCount, if any.
func Match(columnCount int) (Schema, bool) {
	for _, s := range schemas {
		if s.Width() == columnCount {
			return s, true
		}
	}
	return Schema{}, false
}

// SchemaFor returns the layout expected for a region's worksheet.
func SchemaFor(region core.Region) Schema {
	if region == core.RegionGrandTotal {
		return GrandTotalSchema
	}
	return RegionalSchema
}

// SelectSchema validates a sheet width against the layout expected for
// region. There is no partial matching and no reordering by header name.
func SelectSchema(region core.Region, width int) (Schema, error) {
	want := SchemaFor(region)
	if width == want.Width() {
		return want, nil
	}
	if other, ok := Match(width); ok {
		return Schema{}, fmt.Errorf("%w: %s has %d columns, %s layout needs %d (width fits the %s layout)",
			ErrSchemaMismatch, region, width, want.Variant, want.Width(), other.Variant)
	}
	return Schema{}, fmt.Errorf("%w: %s has %d columns, %s layout needs %d",
		ErrSchemaMismatch, region, width, want.Variant, want.Width())
}

// dataRows drops the header row and pads the data rows to the widest row
// of the sheet, header included. Readers trim trailing blank cells, so a
// column left empty in every data row is still counted through its header.
func dataRows(values [][]any) ([][]any, int, error) {
	if len(values) <= 1 {
		return nil, 0, ErrEmptySheet
	}
	width := 0
	for _, r := range values {
		if len(r) > width {
			width = len(r)
		}
	}
	rows := values[1:]
	out := make([][]any, len(rows))
	for i, r := range rows {
		padded := make([]any, width)
		for j := range padded {
			if j < len(r) && r[j] != nil {
				padded[j] = r[j]
			} else {
				padded[j] = ""
			}
		}
		out[i] = padded
	}
	return out, width, nil
}
