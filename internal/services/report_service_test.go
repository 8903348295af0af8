package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"despesas/internal/core"
	"despesas/internal/storage"
	"despesas/internal/store"
	"despesas/internal/store/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(y, m, d int, cat, amount, desc string) core.Expense {
	return core.Expense{Date: core.NewDate(y, m, d), Category: cat, Amount: dec(amount), Description: desc}
}

func TestReportService_ListSortsByDate(t *testing.T) {
	ctx := context.Background()
	s := memory.New(
		expense(2024, 11, 1, "Alimentação", "30", "Padaria"),
		expense(2024, 10, 5, "Alimentação", "450", "Compras do Mês"),
		expense(2024, 11, 1, "Transporte", "4.5", "Ônibus"),
	)
	r := NewReportService(s, nil)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "05/10/2024", list[0].Date.Display())
	require.Equal(t, "Padaria", list[1].Description, "same-day ties keep store order")
	require.Equal(t, "Ônibus", list[2].Description)

	all, _ := s.All(ctx)
	require.Equal(t, "Padaria", all[0].Description, "listing does not reorder the store")
}

func TestReportService_ListEmpty(t *testing.T) {
	list, err := NewReportService(memory.New(), nil).List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestReportService_AnalyzeSeed(t *testing.T) {
	r := NewReportService(memory.New(SeedExpenses()...), nil)
	a, err := r.Analyze(context.Background())
	require.NoError(t, err)

	require.Equal(t, "Alimentação", a.Top.Name)
	require.True(t, a.Top.Amount.Equal(dec("480.00")))
	require.True(t, a.Total.Equal(dec("920.30")))

	names := make([]string, 0, len(a.ByCategory))
	sum := decimal.Zero
	for _, c := range a.ByCategory {
		names = append(names, c.Name)
		sum = sum.Add(c.Amount)
	}
	require.Equal(t, []string{"Alimentação", "Transporte", "Lazer", "Educação", "Saúde"}, names)
	require.True(t, sum.Equal(a.Total), "category totals add up to the grand total")

	// 480/920.30 = 52.15%, 30.40/920.30 = 3.30%
	require.Equal(t, 52, a.ByCategory[0].Percent)
	require.Equal(t, 3, a.ByCategory[1].Percent)
	require.Equal(t, 26, a.ByCategory[0].Percent/2)
}

func TestReportService_AnalyzeEmpty(t *testing.T) {
	_, err := NewReportService(memory.New(), nil).Analyze(context.Background())
	require.ErrorIs(t, err, core.ErrNoData)
}

func TestSummarizeTieGoesToFirstSeen(t *testing.T) {
	a := core.Summarize([]core.Expense{
		expense(2024, 1, 1, "B", "10", ""),
		expense(2024, 1, 2, "A", "10", ""),
	})
	require.Equal(t, "B", a.Top.Name)
	require.Equal(t, 50, a.ByCategory[0].Percent)
}

func TestSummarizeZeroTotal(t *testing.T) {
	a := core.Summarize([]core.Expense{expense(2024, 1, 1, "Grátis", "0", "")})
	require.Equal(t, 0, a.ByCategory[0].Percent)
	require.Equal(t, "Grátis", a.Top.Name)
}

func TestReportService_MonthlyReport(t *testing.T) {
	backends := map[string]func(t *testing.T) store.Store{
		"memory": func(t *testing.T) store.Store { return memory.New() },
		"sqlite": func(t *testing.T) store.Store {
			repo, err := storage.NewSQLiteRepository("")
			require.NoError(t, err)
			t.Cleanup(func() { repo.Close() })
			return repo
		},
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(t)
			require.NoError(t, s.Reset(ctx, []core.Expense{
				expense(2024, 10, 5, "Alimentação", "450.00", "Compras do Mês"),
				expense(2024, 11, 1, "Alimentação", "30.00", "Padaria"),
			}))
			r := NewReportService(s, nil)

			m, err := r.MonthlyReport(ctx, "10/2024")
			require.NoError(t, err)
			require.Len(t, m.Expenses, 1)
			require.Equal(t, "Compras do Mês", m.Expenses[0].Description)
			require.True(t, m.Total.Equal(dec("450")))

			m, err = r.MonthlyReport(ctx, "1/2024")
			require.NoError(t, err)
			require.Empty(t, m.Expenses, "month 1 is not a prefix match for 10 or 11")

			_, err = r.MonthlyReport(ctx, "2024")
			require.ErrorIs(t, err, core.ErrInvalidPeriod)
			_, err = r.MonthlyReport(ctx, "out/2024")
			require.ErrorIs(t, err, core.ErrInvalidPeriod)
		})
	}
}
