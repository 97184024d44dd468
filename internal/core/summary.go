package core

import (
	"sort"
	"strings"
)

// ProgramSummary aggregates budget and realization for one program.
type ProgramSummary struct {
	Program    string
	Budget     float64
	Realized   float64
	Percentage float64
}

// ExpenseTypeSummary aggregates one expense type within a program.
type ExpenseTypeSummary struct {
	ExpenseType string
	Budget      float64
	Realized    float64
	Percentage  float64
}

// Totals is the overall budget and realization of a filtered selection.
type Totals struct {
	Budget     float64
	Realized   float64
	Percentage float64
}

// Regions returns the distinct regions in records, sorted by name.
func Regions(records []BudgetRecord) []Region {
	seen := map[Region]struct{}{}
	out := make([]Region, 0)
	for _, r := range records {
		if _, ok := seen[r.Region]; ok {
			continue
		}
		seen[r.Region] = struct{}{}
		out = append(out, r.Region)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Years returns the distinct years in records, most recent first.
func Years(records []BudgetRecord) []int {
	seen := map[int]struct{}{}
	out := make([]int, 0)
	for _, r := range records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Filter keeps the records of one region and year, preserving order.
func Filter(records []BudgetRecord, region Region, year int) []BudgetRecord {
	out := make([]BudgetRecord, 0)
	for _, r := range records {
		if r.Region == region && r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// Programs returns the distinct programs in order of first appearance.
func Programs(records []BudgetRecord) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Program]; ok {
			continue
		}
		seen[r.Program] = struct{}{}
		out = append(out, r.Program)
	}
	return out
}

// Total sums the whole selection.
func Total(records []BudgetRecord) Totals {
	var t Totals
	for _, r := range records {
		t.Budget += r.Budget
		t.Realized += r.Realized
	}
	t.Percentage = Percentage(t.Budget, t.Realized)
	return t
}

// SummarizePrograms groups records by program, ordered by program name.
func SummarizePrograms(records []BudgetRecord) []ProgramSummary {
	byProgram := map[string]*ProgramSummary{}
	for _, r := range records {
		s, ok := byProgram[r.Program]
		if !ok {
			s = &ProgramSummary{Program: r.Program}
			byProgram[r.Program] = s
		}
		s.Budget += r.Budget
		s.Realized += r.Realized
	}
	out := make([]ProgramSummary, 0, len(byProgram))
	for _, s := range byProgram {
		s.Percentage = Percentage(s.Budget, s.Realized)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Program < out[j].Program })
	return out
}

// SummarizeExpenseTypes breaks one program down by expense type,
// ordered by expense type name.
func SummarizeExpenseTypes(records []BudgetRecord, program string) []ExpenseTypeSummary {
	program = NormalizeProgram(program)
	byType := map[string]*ExpenseTypeSummary{}
	for _, r := range records {
		if r.Program != program {
			continue
		}
		s, ok := byType[r.ExpenseType]
		if !ok {
			s = &ExpenseTypeSummary{ExpenseType: r.ExpenseType}
			byType[r.ExpenseType] = s
		}
		s.Budget += r.Budget
		s.Realized += r.Realized
	}
	out := make([]ExpenseTypeSummary, 0, len(byType))
	for _, s := range byType {
		s.Percentage = Percentage(s.Budget, s.Realized)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseType < out[j].ExpenseType })
	return out
}

// SortProgramsByBudget orders summaries by budget, largest first.
func SortProgramsByBudget(s []ProgramSummary) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Budget > s[j].Budget })
}

// SortExpenseTypesByBudget orders summaries by budget, largest first.
func SortExpenseTypesByBudget(s []ExpenseTypeSummary) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Budget > s[j].Budget })
}

// MonthlyPrograms returns the programs that have monthly data for a
// region and year, in order of first appearance.
func MonthlyPrograms(monthly []MonthlyRecord, region Region, year int) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, m := range monthly {
		if m.Region != region || m.Year != year {
			continue
		}
		if _, ok := seen[m.Program]; ok {
			continue
		}
		seen[m.Program] = struct{}{}
		out = append(out, m.Program)
	}
	return out
}

// MonthlyTrend selects the monthly rows of the given programs for a region
// and year, in calendar order. No programs selected means no rows.
func MonthlyTrend(monthly []MonthlyRecord, region Region, year int, programs []string) []MonthlyRecord {
	want := make(map[string]struct{}, len(programs))
	for _, p := range programs {
		want[NormalizeProgram(p)] = struct{}{}
	}
	out := make([]MonthlyRecord, 0)
	if len(want) == 0 {
		return out
	}
	for _, m := range monthly {
		if m.Region != region || m.Year != year {
			continue
		}
		if _, ok := want[strings.ToUpper(m.Program)]; !ok {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
