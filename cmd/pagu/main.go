package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"pagu/internal/backend"
	"pagu/internal/cli"
	"pagu/internal/config"
	"pagu/internal/core"
	"pagu/internal/ingest"
	plog "pagu/internal/log"
	"pagu/internal/report"
	"pagu/internal/storage"
)

var errNoData = errors.New("no data available")

type options struct {
	region   string
	year     int
	program  string
	programs string
	history  int
}

func main() {
	var opts options
	flag.StringVar(&opts.region, "region", string(core.RegionGrandTotal), "region (worksheet) to report on")
	flag.IntVar(&opts.year, "year", 0, "fiscal year; 0 selects the latest year of the region")
	flag.StringVar(&opts.program, "program", "", "program whose expense types are listed; defaults to the largest program")
	flag.StringVar(&opts.programs, "programs", "", "comma separated programs for the monthly trend; defaults to all")
	flag.IntVar(&opts.history, "history", 0, "also list this many recorded ingestion runs")
	flag.Parse()

	cli.LoadEnvFile()
	cfg := config.Load()
	logger := plog.WithComponent(cli.SetupLogger(cfg.LogLevel), plog.ComponentApp)
	cli.LoadAndValidateConfig(logger, cfg)

	ctx, stop := cli.SignalContext()
	defer stop()

	if err := run(ctx, logger, cfg, opts, os.Stdout); err != nil {
		stop()
		if errors.Is(err, errNoData) {
			fmt.Fprintln(os.Stderr, "warning: no data available from", sourceLabel(cfg))
		} else {
			logger.Error("pagu failed", plog.FieldError, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts options, out io.Writer) error {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return err
	}
	svcOpts := []ingest.ServiceOption{ingest.WithServiceLogger(logger)}
	runLog := cli.InitRunLog(logger, cfg.RunLogDBPath)
	if runLog != nil {
		defer runLog.Close()
		svcOpts = append(svcOpts, ingest.WithRecorder(runLog))
	}

	svc := ingest.NewService(ingest.NewPipeline(res.Reader, ingest.WithLogger(logger)), svcOpts...)
	snap := svc.Snapshot(ctx)

	fmt.Fprintln(out, report.Ingestion(snap.Report))
	if runLog != nil && opts.history > 0 {
		if err := printHistory(ctx, runLog, opts.history, out); err != nil {
			logger.Warn("Cannot read run history", plog.FieldError, err)
		}
	}
	if snap.Empty() {
		return errNoData
	}
	return printSummaries(snap, opts, out)
}

func printHistory(ctx context.Context, runLog *storage.RunLog, limit int, out io.Writer) error {
	runs, err := runLog.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, report.RunHistory(runs))
	return nil
}

func printSummaries(snap ingest.Snapshot, opts options, out io.Writer) error {
	region := core.Region(strings.ToUpper(strings.TrimSpace(opts.region)))
	year := opts.year
	if year == 0 {
		years := core.Years(regionRecords(snap.Annual, region))
		if len(years) == 0 {
			return fmt.Errorf("no records for region %q (available: %v)", region, core.Regions(snap.Annual))
		}
		year = years[0]
	}

	records := core.Filter(snap.Annual, region, year)
	if len(records) == 0 {
		return fmt.Errorf("no records for %s %d", region, year)
	}
	fmt.Fprintln(out, report.Overview(snap.Annual, region, year))

	programs := core.SummarizePrograms(records)
	core.SortProgramsByBudget(programs)
	fmt.Fprintln(out, report.Programs(programs))

	program := opts.program
	if program == "" && len(programs) > 0 {
		program = programs[0].Program
	}
	types := core.SummarizeExpenseTypes(records, program)
	core.SortExpenseTypesByBudget(types)
	fmt.Fprintln(out, report.ExpenseTypes(program, types))

	var selected []string
	if opts.programs != "" {
		for _, p := range strings.Split(opts.programs, ",") {
			if p = strings.TrimSpace(p); p != "" {
				selected = append(selected, p)
			}
		}
	} else {
		selected = core.MonthlyPrograms(snap.Monthly, region, year)
	}
	fmt.Fprintln(out, report.MonthlyPivot(core.MonthlyTrend(snap.Monthly, region, year, selected)))
	return nil
}

func regionRecords(records []core.BudgetRecord, region core.Region) []core.BudgetRecord {
	var out []core.BudgetRecord
	for _, r := range records {
		if r.Region == region {
			out = append(out, r)
		}
	}
	return out
}

func sourceLabel(cfg *config.Config) string {
	switch cfg.DataBackend {
	case "xlsx":
		return cfg.XLSXPath
	case "memory":
		return cfg.MemoryDir
	default:
		return cfg.SpreadsheetURL
	}
}
