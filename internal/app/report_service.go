package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
	"github.com/jsamuelsen11/referral-pipeline/internal/ports"
)

// Compile-time check that ReportService implements ports.ReportService.
var _ ports.ReportService = (*ReportService)(nil)

// IncomeMonths is the length of the projected income series.
const IncomeMonths = 6

// ReportConfig selects the stage counted as "signed" and the commission
// rate used for income projections.
type ReportConfig struct {
	SignedStage pipeline.Stage
	IncomeRate  report.IncomeRate
}

// ReportService implements ports.ReportService. It only reads.
type ReportService struct {
	entities ports.EntityStore
	ledger   ports.Ledger
	catalog  pipeline.Catalog
	cfg      ReportConfig
	logger   *slog.Logger
	opts     options
}

// NewReportService creates a ReportService. The signed stage must belong to
// the referral source pipeline.
func NewReportService(
	entities ports.EntityStore,
	ledger ports.Ledger,
	catalog pipeline.Catalog,
	cfg ReportConfig,
	logger *slog.Logger,
	opts ...Option,
) (*ReportService, error) {
	if !catalog.For(pipeline.KindReferralSource).Contains(cfg.SignedStage) {
		return nil, fmt.Errorf("signed stage %q is not a referral source stage", cfg.SignedStage)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ReportService{
		entities: entities,
		ledger:   ledger,
		catalog:  catalog,
		cfg:      cfg,
		logger:   logger,
		opts:     o,
	}, nil
}

// Summary returns entity counts and the deal value of open clients.
func (s *ReportService) Summary(ctx context.Context) (*report.Summary, error) {
	var out report.Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.entities.Count(gctx, pipeline.KindReferralSource)
		out.ReferralSourceCount = n
		return err
	})
	g.Go(func() error {
		n, err := s.entities.Count(gctx, pipeline.KindClient)
		out.ClientCount = n
		return err
	})
	g.Go(func() error {
		closed := s.catalog.For(pipeline.KindClient).ClosedStages()
		v, err := s.entities.SumDealSize(gctx, closed)
		out.OpenClientValueCents = v
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to build summary",
			slog.String("operation", "Summary"),
			slog.Any("error", err),
		)
		return nil, err
	}
	return &out, nil
}

// Dashboard returns the weekly report for month and the income series for
// the months ending with the current one. An empty or malformed month
// means the current month.
func (s *ReportService) Dashboard(ctx context.Context, month string) (*report.Dashboard, error) {
	now := s.opts.now()
	m := report.MonthOrCurrent(month, now)
	months := report.LastMonths(IncomeMonths, now)

	s.logger.DebugContext(ctx, "building dashboard",
		slog.String("month", m.String()),
		slog.String("requested", month),
	)

	var (
		signed, added report.WeekCounts
		sums          map[report.MonthKey]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		signed, err = s.ledger.CountTransitionsInto(gctx, pipeline.KindReferralSource, s.cfg.SignedStage, m)
		return err
	})
	g.Go(func() error {
		var err error
		added, err = s.ledger.CountCreations(gctx, pipeline.KindClient, m)
		return err
	})
	g.Go(func() error {
		var err error
		sums, err = s.entities.DealSizeByCloseMonth(gctx, months[0], months[len(months)-1])
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to build dashboard",
			slog.String("operation", "Dashboard"),
			slog.String("month", m.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &report.Dashboard{
		Month:  m,
		Weekly: report.WeeklyBuckets(signed, added),
		Income: report.IncomeSeries(months, sums, s.cfg.IncomeRate),
	}, nil
}
