package ingest

import (
	"math"
	"strconv"

	"pagu/internal/core"
)

// BuildAnnual projects a mapped sheet onto the annual table. Only rows with
// an expense type are kept. Rows whose year cannot be read, or whose
// amounts are not finite and non-negative, are dropped and counted.
func BuildAnnual(m *MappedSheet) ([]core.BudgetRecord, int) {
	rows := m.ExpenseRows()
	out := make([]core.BudgetRecord, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		year, ok := parseYear(m.Cell(r, ColYear))
		if !ok {
			dropped++
			continue
		}
		rec := core.BudgetRecord{
			Region:      m.Region,
			Year:        year,
			Program:     m.Text(r, ColProgram),
			ExpenseType: m.Text(r, ColExpenseType),
			Budget:      core.NormalizeAmount(m.Cell(r, ColBudget)),
			Realized:    core.NormalizeAmount(m.Cell(r, ColRealized)),
		}
		if rec.Validate() != nil {
			dropped++
			continue
		}
		out = append(out, rec)
	}
	return out, dropped
}

// parseYear reads a four digit year from text or from an integral number.
func parseYear(v any) (int, bool) {
	var y int
	switch x := v.(type) {
	case int:
		y = x
	case int64:
		y = int(x)
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return 0, false
		}
		y = int(x)
	default:
		n, err := strconv.Atoi(cellText(v))
		if err != nil {
			return 0, false
		}
		y = n
	}
	return y, core.ValidYear(y)
}
