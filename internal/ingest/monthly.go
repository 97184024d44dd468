package ingest

import (
	"fmt"
	"strings"

	"pagu/internal/core"
)

type monthlyKey struct {
	program string
	year    int
}

// BuildMonthly unpivots the twelve realization columns of a mapped sheet
// and sums them per (program, year, month). Every row contributes, with or
// without an expense type; rows with an unreadable year are skipped.
//
// Output is ordered by calendar month, then by the order in which each
// (program, year) first appears in the sheet. All twelve months are
// emitted for every key, zero sums included.
func BuildMonthly(m *MappedSheet) ([]core.MonthlyRecord, error) {
	months := core.Months()
	cols, err := monthColumnIndexes(m)
	if err != nil {
		return nil, err
	}

	var keys []monthlyKey
	sums := map[monthlyKey]*[12]float64{}
	for _, r := range m.Rows {
		year, ok := parseYear(m.Cell(r, ColYear))
		if !ok {
			continue
		}
		k := monthlyKey{program: m.Text(r, ColProgram), year: year}
		acc, seen := sums[k]
		if !seen {
			acc = &[12]float64{}
			sums[k] = acc
			keys = append(keys, k)
		}
		for i, c := range cols {
			acc[i] += core.NormalizeAmount(r[c])
		}
	}

	out := make([]core.MonthlyRecord, 0, len(keys)*len(months))
	for i, mo := range months {
		for _, k := range keys {
			rec := core.MonthlyRecord{
				Region:   m.Region,
				Year:     k.year,
				Program:  k.program,
				Month:    mo,
				Realized: sums[k][i],
			}
			if rec.Validate() != nil {
				continue
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// monthColumnIndexes locates the realization column of every month by
// matching header labels against the canonical month names.
func monthColumnIndexes(m *MappedSheet) ([]int, error) {
	cols := make([]int, 12)
	found := 0
	for i, h := range m.Headers {
		label, ok := strings.CutPrefix(h, monthColumnPrefix)
		if !ok {
			continue
		}
		mo, ok := core.ParseMonth(label)
		if !ok || cols[mo-1] != 0 {
			continue
		}
		cols[mo-1] = i
		found++
	}
	if found != len(cols) {
		return nil, fmt.Errorf("%w: %s layout has %d of 12 month columns",
			ErrMonthColumnsMissing, m.Schema.Variant, found)
	}
	return cols, nil
}
