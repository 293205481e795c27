package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ordersight/internal/errors"
)

// Analyzer runs the full orders analysis pipeline. It holds no per-request
// state; one Analyzer may serve concurrent report generations over different
// (or the same) input tables.
type Analyzer struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewAnalyzer creates an analyzer. A nil logger falls back to slog.Default.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Derive validates the request's column mapping and materializes the typed
// order rows. All configuration errors surface here, before any aggregation:
// a missing required column name fails, while a missing optional category
// column only clears the second return value. The input table is never
// mutated; derivation is idempotent by construction.
func (a *Analyzer) Derive(req Request) ([]Row, bool, error) {
	if err := a.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, false, errors.NewConfigError(fe.Field(), "required value is missing")
		}
		return nil, false, err
	}

	idx, err := resolveColumns(req)
	if err != nil {
		return nil, false, err
	}

	rows := deriveRows(req, idx)
	return rows, idx.hasCategory, nil
}

// Run executes one report generation: derive, aggregate by the five period
// types, compute planning statistics, optionally analyze categories, and roll
// up by product and invoice. The five period aggregations are independent and
// run concurrently.
func (a *Analyzer) Run(ctx context.Context, req Request) (*Results, error) {
	started := time.Now()

	rows, hasCategory, err := a.Derive(req)
	if err != nil {
		return nil, err
	}

	res := &Results{
		ReportID:    uuid.NewString(),
		GeneratedAt: started,
		Rows:        rows,
		HasCategory: hasCategory,
	}

	a.logger.InfoContext(ctx, "starting orders analysis",
		slog.String("report_id", res.ReportID),
		slog.Int("row_count", len(rows)),
		slog.Bool("category_enabled", hasCategory))

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { res.Daily = AggregateByPeriod(rows, PeriodDay); return nil })
	g.Go(func() error { res.Weekly = AggregateByPeriod(rows, PeriodYearWeek); return nil })
	g.Go(func() error { res.Monthly = AggregateByPeriod(rows, PeriodMonth); return nil })
	g.Go(func() error { res.Weekday = AggregateByPeriod(rows, PeriodWeekday); return nil })
	g.Go(func() error { res.Quarterly = AggregateByPeriod(rows, PeriodYearQuarter); return nil })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.DailyStatistics = DailyStatistics(res.Daily)
	res.WeekdayStatistics = WeekdayStatistics(rows)

	if hasCategory {
		res.CategoryAnalysis = AnalyzeCategoryByDay(rows)
	} else if req.CategoryCol != "" {
		a.logger.WarnContext(ctx, "category column not found, skipping category analysis",
			slog.String("report_id", res.ReportID),
			slog.String("category_col", req.CategoryCol))
	}

	res.Products = ProductRollup(rows)
	res.Invoices = InvoiceRollup(rows)

	a.logger.InfoContext(ctx, "orders analysis complete",
		slog.String("report_id", res.ReportID),
		slog.Int("days", len(res.Daily)),
		slog.Int("products", len(res.Products)),
		slog.Int("invoices", len(res.Invoices)),
		slog.Duration("elapsed", time.Since(started)))

	return res, nil
}
