package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pagu/internal/core"
	"pagu/internal/ingest"
	"pagu/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// newTable builds a bordered table; numeric lists the columns aligned
// right.
func newTable(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

func section(title, body string) string {
	return titleStyle.Render(title) + "\n" + body + "\n"
}

// Overview renders the totals of one region and year.
func Overview(records []core.BudgetRecord, region core.Region, year int) string {
	totals := core.Total(core.Filter(records, region, year))
	rows := [][]string{{
		FormatRupiah(totals.Budget),
		FormatRupiah(totals.Realized),
		FormatPercent(totals.Percentage),
	}}
	return section(fmt.Sprintf("%s %d", region, year),
		newTable([]string{"Pagu", "Realisasi", "Persentase"}, rows, 0, 1, 2))
}

// Programs renders program summaries in the order given.
func Programs(summaries []core.ProgramSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Program,
			FormatRupiah(s.Budget),
			FormatRupiah(s.Realized),
			FormatPercent(s.Percentage),
		})
	}
	return section("Program", newTable([]string{"Program", "Pagu", "Realisasi", "Persentase"}, rows, 1, 2, 3))
}

// ExpenseTypes renders the expense type breakdown of one program.
func ExpenseTypes(program string, summaries []core.ExpenseTypeSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ExpenseType,
			FormatRupiah(s.Budget),
			FormatRupiah(s.Realized),
			FormatPercent(s.Percentage),
		})
	}
	return section("Jenis Belanja: "+core.NormalizeProgram(program),
		newTable([]string{"Jenis Belanja", "Pagu", "Realisasi", "Persentase"}, rows, 1, 2, 3))
}

// MonthlyPivot renders a monthly trend with one row per month and one
// column per program. Missing cells are blank.
func MonthlyPivot(trend []core.MonthlyRecord) string {
	if len(trend) == 0 {
		return section("Realisasi Bulanan", mutedStyle.Render("no monthly data"))
	}

	var programs []string
	col := map[string]int{}
	for _, r := range trend {
		if _, ok := col[r.Program]; !ok {
			col[r.Program] = len(programs)
			programs = append(programs, r.Program)
		}
	}

	cells := map[core.Month][]string{}
	var months []core.Month
	for _, r := range trend {
		row, ok := cells[r.Month]
		if !ok {
			row = make([]string, len(programs))
			cells[r.Month] = row
			months = append(months, r.Month)
		}
		row[col[r.Program]] = FormatRupiah(r.Realized)
	}

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, append([]string{m.Label()}, cells[m]...))
	}
	numeric := make([]int, len(programs))
	for i := range numeric {
		numeric[i] = i + 1
	}
	return section("Realisasi Bulanan", newTable(append([]string{"Bulan"}, programs...), rows, numeric...))
}

// Ingestion renders the per-sheet outcomes of a run.
func Ingestion(r ingest.Report) string {
	title := fmt.Sprintf("Ingestion %s (%d/%d sheets, %s)", r.RunID, r.Succeeded(), len(r.Sheets), r.Duration().Round(time.Millisecond))
	if r.Err != nil {
		return section(title, mutedStyle.Render("source unavailable: "+r.Err.Error()))
	}
	rows := make([][]string, 0, len(r.Sheets))
	for _, s := range r.Sheets {
		note := s.Reason
		if s.Status == ingest.StatusOK {
			note = s.MonthlyReason
		}
		rows = append(rows, []string{
			s.Region.String(),
			string(s.Status),
			strconv.Itoa(s.AnnualRows),
			strconv.Itoa(s.DroppedRows),
			strconv.Itoa(s.MonthlyRows),
			note,
		})
	}
	return section(title, newTable([]string{"Sheet", "Status", "Annual", "Dropped", "Monthly", "Note"}, rows, 2, 3, 4))
}

// RunHistory renders persisted runs, newest first.
func RunHistory(runs []storage.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		ok := 0
		var skipped []string
		for _, s := range r.Sheets {
			if s.Status == string(ingest.StatusOK) {
				ok++
			} else {
				skipped = append(skipped, s.Region)
			}
		}
		status := fmt.Sprintf("%d/%d", ok, len(r.Sheets))
		if r.Error != "" {
			status = "unavailable"
		}
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.ID,
			status,
			strconv.Itoa(r.AnnualRows),
			strconv.Itoa(r.MonthlyRows),
			strings.Join(skipped, ", "),
		})
	}
	return section("Riwayat Ingestion", newTable([]string{"Started", "Run", "Sheets", "Annual", "Monthly", "Skipped"}, rows, 3, 4))
}
