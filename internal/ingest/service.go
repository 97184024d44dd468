package ingest

import (
	"context"
	"log/slog"
	"time"

	"pagu/internal/cache"
	"pagu/internal/core"
	plog "pagu/internal/log"
)

// DefaultCacheTTL is how long a snapshot is served before the workbook is
// read again.
const DefaultCacheTTL = 5 * time.Minute

// Snapshot is one immutable ingestion result. Callers must not modify the
// slices.
type Snapshot struct {
	Source    string
	FetchedAt time.Time
	Annual    []core.BudgetRecord
	Monthly   []core.MonthlyRecord
	Report    Report
}

// Empty reports whether no sheet contributed annual rows, which callers
// present as "no data available".
func (s Snapshot) Empty() bool { return len(s.Annual) == 0 }

// RunRecorder persists run reports.
type RunRecorder interface {
	RecordRun(ctx context.Context, r Report) error
}

// Service serves cached snapshots of one workbook.
type Service struct {
	pipeline *Pipeline
	loader   *cache.Loader[Snapshot]
	recorder RunRecorder
	logger   *slog.Logger
	now      func() time.Time
}

type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	ttl      time.Duration
	now      func() time.Time
	recorder RunRecorder
	logger   *slog.Logger
}

func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) { o.ttl = ttl }
}

// WithServiceClock sets the clock used for cache expiry and FetchedAt.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) { o.now = now }
}

func WithRecorder(r RunRecorder) ServiceOption {
	return func(o *serviceOptions) { o.recorder = r }
}

func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) { o.logger = logger }
}

func NewService(p *Pipeline, opts ...ServiceOption) *Service {
	o := serviceOptions{ttl: DefaultCacheTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Service{
		pipeline: p,
		recorder: o.recorder,
		logger:   plog.WithComponent(o.logger, plog.ComponentCache),
		now:      o.now,
	}
	s.loader = cache.NewLoader[Snapshot](
		cache.NewLRUCache[Snapshot](1, o.ttl, cache.WithClock(o.now)),
		s.load,
	)
	return s
}

// Snapshot returns the cached snapshot for the workbook, ingesting it on a
// miss. It never fails; an unreachable source gives an empty snapshot that
// is cached like any other.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	snap, hit := s.loader.Get(ctx, s.pipeline.reader.Source())
	if hit {
		s.logger.Debug("Snapshot served from cache",
			plog.FieldSource, snap.Source,
			plog.FieldRunID, snap.Report.RunID)
	}
	return snap
}

func (s *Service) load(ctx context.Context, source string) Snapshot {
	res := s.pipeline.Run(ctx)
	snap := Snapshot{
		Source:    source,
		FetchedAt: s.now(),
		Annual:    res.Annual,
		Monthly:   res.Monthly,
		Report:    res.Report,
	}
	if s.recorder != nil {
		if err := s.recorder.RecordRun(ctx, res.Report); err != nil {
			s.logger.Warn("Failed to record ingestion run",
				plog.FieldRunID, res.Report.RunID,
				plog.FieldError, err)
		}
	}
	return snap
}
