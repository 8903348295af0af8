package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"despesas/internal/core"
	"despesas/internal/log"
	"despesas/internal/store"
)

// MonthLister is implemented by backends that can filter by month themselves.
type MonthLister interface {
	ListMonth(ctx context.Context, p core.Period) ([]core.Expense, error)
}

// ReportService builds the read-only views over the store.
type ReportService struct {
	store  store.ExpenseLister
	logger *log.Logger
}

func NewReportService(s store.ExpenseLister, logger *log.Logger) *ReportService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ReportService{store: s, logger: logger.WithComponent(log.ComponentReport)}
}

// List returns every expense sorted by date. Expenses on the same day keep
// their insertion order.
func (r *ReportService) List(ctx context.Context) ([]core.Expense, error) {
	expenses, err := r.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	SortByDate(expenses)
	r.logger.DebugContext(ctx, "Expenses listed",
		log.FieldOperation, log.OpList,
		log.FieldCount, len(expenses))
	return expenses, nil
}

// SortByDate sorts in place, stable, by canonical date.
func SortByDate(expenses []core.Expense) {
	slices.SortStableFunc(expenses, func(a, b core.Expense) int {
		return strings.Compare(a.Date.Canonical(), b.Date.Canonical())
	})
}

// Analyze groups every expense by category. It fails with core.ErrNoData on an
// empty store.
func (r *ReportService) Analyze(ctx context.Context) (core.Analysis, error) {
	expenses, err := r.store.All(ctx)
	if err != nil {
		return core.Analysis{}, fmt.Errorf("analyze expenses: %w", err)
	}
	if len(expenses) == 0 {
		return core.Analysis{}, core.ErrNoData
	}
	a := core.Summarize(expenses)
	r.logger.DebugContext(ctx, "Spending analyzed",
		log.FieldOperation, log.OpAnalyze,
		log.FieldCount, len(a.ByCategory),
		log.FieldAmount, a.Total.String())
	return a, nil
}

// MonthlyReport selects the expenses of an MM/YYYY period and sums them.
func (r *ReportService) MonthlyReport(ctx context.Context, rawPeriod string) (core.MonthOverview, error) {
	period, err := core.ParsePeriod(rawPeriod)
	if err != nil {
		return core.MonthOverview{}, err
	}

	var matched []core.Expense
	if ml, ok := r.store.(MonthLister); ok {
		matched, err = ml.ListMonth(ctx, period)
	} else {
		matched, err = r.filterMonth(ctx, period)
	}
	if err != nil {
		return core.MonthOverview{}, fmt.Errorf("monthly report %s: %w", period, err)
	}

	overview := core.MonthOverview{Period: period, Total: decimal.Zero, Expenses: matched}
	for _, e := range matched {
		overview.Total = overview.Total.Add(e.Amount)
	}

	r.logger.DebugContext(ctx, "Monthly report built",
		log.FieldOperation, log.OpMonthly,
		log.FieldPeriod, period.String(),
		log.FieldCount, len(matched))
	return overview, nil
}

func (r *ReportService) filterMonth(ctx context.Context, p core.Period) ([]core.Expense, error) {
	all, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Expense
	for _, e := range all {
		if p.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}
