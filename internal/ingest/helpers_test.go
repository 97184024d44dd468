package ingest

import (
	"testing"

	"pagu/internal/core"
)

func header(s Schema) []any {
	out := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c
	}
	return out
}

// regionalRow builds a 21 column row; months are January onwards and
// missing months are blank.
func regionalRow(program, expense string, year, budget, realized any, months ...any) []any {
	row := []any{"1", "KAB", "521211", expense, program, year, budget}
	for i := 0; i < 12; i++ {
		if i < len(months) {
			row = append(row, months[i])
		} else {
			row = append(row, "")
		}
	}
	return append(row, realized, "")
}

func grandTotalRow(program, expense string, year, budget, realized any) []any {
	return []any{"1", "KPPN LHOKSEUMAWE", "521211", expense, program, year, budget, realized, "", ""}
}

func regionalSheet(rows ...[]any) [][]any {
	return append([][]any{header(RegionalSchema)}, rows...)
}

func grandTotalSheet(rows ...[]any) [][]any {
	return append([][]any{header(GrandTotalSchema)}, rows...)
}

func mustMap(t testing.TB, region core.Region, values [][]any) *MappedSheet {
	t.Helper()
	m, err := MapSheet(region, values)
	if err != nil {
		t.Fatalf("map %s: %v", region, err)
	}
	return m
}

// truncated cuts every row of a sheet, header included, to n cells.
func truncated(values [][]any, n int) [][]any {
	out := make([][]any, len(values))
	for i, r := range values {
		if len(r) > n {
			r = r[:n]
		}
		out[i] = r
	}
	return out
}
