// Package ingest turns the raw worksheets of a budget workbook into the
// annual and monthly tables.
//
// Each region's worksheet is validated against a fixed positional layout,
// mapped to canonical columns and projected onto both tables. A sheet that
// cannot be read or validated is skipped with a recorded reason; it never
// aborts its siblings.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pagu/internal/core"
	plog "pagu/internal/log"
	ports "pagu/internal/sheets"

	"github.com/google/uuid"
)

// Status is the outcome of one sheet.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
)

// SheetOutcome records what one worksheet contributed to a run.
type SheetOutcome struct {
	Region      core.Region
	Status      Status
	Reason      string // set when skipped
	Variant     Variant
	AnnualRows  int
	DroppedRows int
	MonthlyRows int
	// MonthlyReason explains an ok sheet that contributed no monthly rows.
	MonthlyReason string
}

// Report summarizes one ingestion run.
type Report struct {
	RunID      string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	// Err is set when the source itself could not be reached; Sheets is
	// then empty.
	Err    error
	Sheets []SheetOutcome
}

// Succeeded counts the sheets that contributed rows.
func (r Report) Succeeded() int {
	n := 0
	for _, s := range r.Sheets {
		if s.Status == StatusOK {
			n++
		}
	}
	return n
}

func (r Report) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Result holds the two tables produced by a run.
type Result struct {
	Annual  []core.BudgetRecord
	Monthly []core.MonthlyRecord
	Report  Report
}

// Pipeline reads every region sheet, in order, from one workbook.
type Pipeline struct {
	reader  ports.WorkbookReader
	regions []core.Region
	logger  *slog.Logger
	now     func() time.Time
}

type PipelineOption func(*Pipeline)

// WithRegions overrides the worksheets ingested and their order.
func WithRegions(regions ...core.Region) PipelineOption {
	return func(p *Pipeline) { p.regions = regions }
}

func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = logger }
}

func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(reader ports.WorkbookReader, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		reader:  reader,
		regions: core.DefaultRegions(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = plog.WithComponent(p.logger, plog.ComponentIngest)
	return p
}

// Run ingests every region sheet. It never fails: a source that cannot be
// reached yields empty tables and a report carrying the error.
func (p *Pipeline) Run(ctx context.Context) Result {
	report := Report{
		RunID:     uuid.NewString(),
		Source:    p.reader.Source(),
		StartedAt: p.now(),
	}
	logger := p.logger.With(plog.FieldRunID, report.RunID)
	res := Result{Annual: []core.BudgetRecord{}, Monthly: []core.MonthlyRecord{}}

	titles, err := p.reader.SheetTitles(ctx)
	if err != nil {
		report.Err = err
		report.FinishedAt = p.now()
		res.Report = report
		logger.Error("Workbook unavailable",
			plog.FieldSource, report.Source,
			plog.FieldError, err,
			plog.FieldDuration, report.Duration().Milliseconds())
		return res
	}
	available := make(map[string]bool, len(titles))
	for _, t := range titles {
		available[t] = true
	}

	for _, region := range p.regions {
		outcome, annual, monthly := p.processSheet(ctx, region, available)
		report.Sheets = append(report.Sheets, outcome)
		res.Annual = append(res.Annual, annual...)
		res.Monthly = append(res.Monthly, monthly...)

		fields := plog.NewFields().WithSheet(region.String(), region.String())
		if outcome.Status == StatusOK {
			fields.WithRows(outcome.AnnualRows, outcome.MonthlyRows, outcome.DroppedRows)
			fields[plog.FieldVariant] = outcome.Variant.String()
			if outcome.MonthlyReason != "" {
				fields[plog.FieldReason] = outcome.MonthlyReason
			}
			logger.Info("Sheet ingested", fields.ToSlice()...)
		} else {
			fields[plog.FieldReason] = outcome.Reason
			logger.Warn("Sheet skipped", fields.ToSlice()...)
		}
	}

	report.FinishedAt = p.now()
	res.Report = report
	logger.Info("Ingestion finished",
		plog.FieldSource, report.Source,
		"sheets_ok", report.Succeeded(),
		"sheets_total", len(report.Sheets),
		plog.FieldRowsAnnual, len(res.Annual),
		plog.FieldRowsMonthly, len(res.Monthly),
		plog.FieldDuration, report.Duration().Milliseconds())
	return res
}

func (p *Pipeline) processSheet(ctx context.Context, region core.Region, available map[string]bool) (SheetOutcome, []core.BudgetRecord, []core.MonthlyRecord) {
	outcome := SheetOutcome{Region: region}
	skip := func(err error) (SheetOutcome, []core.BudgetRecord, []core.MonthlyRecord) {
		outcome.Status = StatusSkipped
		outcome.Reason = err.Error()
		return outcome, nil, nil
	}

	title := region.String()
	if !available[title] {
		return skip(fmt.Errorf("%w: %s", ports.ErrSheetNotFound, title))
	}
	values, err := p.reader.ReadSheet(ctx, title)
	if err != nil {
		return skip(err)
	}
	mapped, err := MapSheet(region, values)
	if err != nil {
		return skip(err)
	}

	annual, dropped := BuildAnnual(mapped)
	monthly, err := BuildMonthly(mapped)
	if err != nil {
		if !errors.Is(err, ErrMonthColumnsMissing) {
			return skip(err)
		}
		outcome.MonthlyReason = err.Error()
	}

	outcome.Status = StatusOK
	outcome.Variant = mapped.Schema.Variant
	outcome.AnnualRows = len(annual)
	outcome.DroppedRows = dropped
	outcome.MonthlyRows = len(monthly)
	return outcome, annual, monthly
}
