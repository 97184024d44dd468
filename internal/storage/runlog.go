package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pagu/internal/ingest"
	plog "pagu/internal/log"

	_ "modernc.org/sqlite"
)

// fixed width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunLog persists ingestion reports. It stores run metadata and per-sheet
// outcomes only, never budget rows.
type RunLog struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ ingest.RunRecorder = (*RunLog)(nil)

// Run is one persisted ingestion run.
type Run struct {
	ID          string
	Source      string
	StartedAt   time.Time
	FinishedAt  time.Time
	Error       string
	AnnualRows  int
	MonthlyRows int
	Sheets      []SheetRun
}

// SheetRun is one persisted sheet outcome.
type SheetRun struct {
	Region        string
	Status        string
	Reason        string
	Variant       string
	AnnualRows    int
	DroppedRows   int
	MonthlyRows   int
	MonthlyReason string
}

func OpenRunLog(dbPath string) (*RunLog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateUp(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &RunLog{db: db, logger: plog.WithComponent(nil, plog.ComponentStorage)}, nil
}

func (l *RunLog) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// RecordRun implements ingest.RunRecorder
func (l *RunLog) RecordRun(ctx context.Context, r ingest.Report) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	errText := ""
	if r.Err != nil {
		errText = r.Err.Error()
	}
	annual, monthly := 0, 0
	for _, s := range r.Sheets {
		annual += s.AnnualRows
		monthly += s.MonthlyRows
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, started_at, finished_at, error, annual_rows, monthly_rows)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, r.StartedAt.UTC().Format(timeLayout), r.FinishedAt.UTC().Format(timeLayout),
		errText, annual, monthly,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, s := range r.Sheets {
		variant := ""
		if s.Status == ingest.StatusOK {
			variant = s.Variant.String()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_outcomes
			 (run_id, position, region, status, reason, variant, annual_rows, dropped_rows, monthly_rows, monthly_reason)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, i, s.Region.String(), string(s.Status), s.Reason, variant,
			s.AnnualRows, s.DroppedRows, s.MonthlyRows, s.MonthlyReason,
		); err != nil {
			return fmt.Errorf("insert sheet outcome %s: %w", s.Region, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}

	l.logger.DebugContext(ctx, "Ingestion run recorded",
		plog.FieldRunID, r.RunID,
		"sheets", len(r.Sheets))
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (l *RunLog) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, source, started_at, finished_at, error, annual_rows, monthly_rows
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &run.Source, &started, &finished, &run.Error, &run.AnnualRows, &run.MonthlyRows); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		sheets, err := l.sheetRuns(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Sheets = sheets
	}
	return runs, nil
}

func (l *RunLog) sheetRuns(ctx context.Context, runID string) ([]SheetRun, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT region, status, reason, variant, annual_rows, dropped_rows, monthly_rows, monthly_reason
		 FROM sheet_outcomes WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query sheet outcomes: %w", err)
	}
	defer rows.Close()

	var out []SheetRun
	for rows.Next() {
		var s SheetRun
		if err := rows.Scan(&s.Region, &s.Status, &s.Reason, &s.Variant,
			&s.AnnualRows, &s.DroppedRows, &s.MonthlyRows, &s.MonthlyReason); err != nil {
			return nil, fmt.Errorf("scan sheet outcome: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
