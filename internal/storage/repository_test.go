package storage

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"despesas/internal/core"
	"despesas/internal/store"
)

var _ store.Store = (*SQLiteRepository)(nil)

func newRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository("")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func expense(y, m, d int, cat, amount, desc string) core.Expense {
	return core.Expense{
		Date:        core.NewDate(y, m, d),
		Category:    cat,
		Amount:      decimal.RequireFromString(amount),
		Description: desc,
	}
}

func TestSQLiteRepository_AppendAndAll(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	ref, err := repo.Append(ctx, expense(2024, 11, 1, "Alimentação", "30.00", "Padaria"))
	require.NoError(t, err)
	require.Equal(t, "1", ref)

	_, err = repo.Append(ctx, expense(2024, 10, 5, "Alimentação", "450.00", "Compras do Mês"))
	require.NoError(t, err)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Padaria", all[0].Description)
	require.Equal(t, "2024-11-01", all[0].Date.Canonical())
	require.True(t, all[1].Amount.Equal(decimal.NewFromInt(450)))
	require.Equal(t, "Alimentação", all[1].Category)
}

func TestSQLiteRepository_RejectsInvalid(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.Append(context.Background(), expense(2024, 1, 1, "X", "-2", "neg"))
	require.ErrorIs(t, err, core.ErrInvalidAmount)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSQLiteRepository_Reset(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.Append(ctx, expense(2024, 1, 1, "Old", "1", "old"))
	require.NoError(t, err)

	require.NoError(t, repo.Reset(ctx, []core.Expense{
		expense(2024, 2, 1, "A", "2", "a"),
		expense(2024, 2, 2, "B", "3", "b"),
	}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "a", all[0].Description)
	require.Equal(t, "b", all[1].Description)
}

func TestSQLiteRepository_ListMonth(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.Reset(ctx, []core.Expense{
		expense(2024, 10, 5, "Alimentação", "450", "Compras do Mês"),
		expense(2024, 11, 1, "Alimentação", "30", "Padaria"),
		expense(2024, 1, 9, "Lazer", "10", "Jan"),
	}))

	oct, err := repo.ListMonth(ctx, core.Period{Year: 2024, Month: 10})
	require.NoError(t, err)
	require.Len(t, oct, 1)
	require.Equal(t, "Compras do Mês", oct[0].Description)

	jan, err := repo.ListMonth(ctx, core.Period{Year: 2024, Month: 1})
	require.NoError(t, err)
	require.Len(t, jan, 1, "month 1 must not match 10, 11 or 12")
}

func TestSQLiteRepository_Isolated(t *testing.T) {
	ctx := context.Background()
	a := newRepo(t)
	b := newRepo(t)

	_, err := a.Append(ctx, expense(2024, 1, 1, "A", "1", "a"))
	require.NoError(t, err)

	all, err := b.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSQLiteRepository_LogsOperations(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ctx := context.Background()
	repo := newRepo(t)
	_, err := repo.Append(ctx, expense(2024, 1, 1, "A", "1", "a"))
	require.NoError(t, err)
	require.NoError(t, repo.Reset(ctx, nil))

	out := buf.String()
	require.Contains(t, out, "component=storage")
	require.Contains(t, out, "operation=append")
	require.Contains(t, out, "operation=reset")
}
