package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"despesas/internal/core"
	"despesas/internal/export"
	"despesas/internal/store/memory"
)

func TestExportService_CSVKeepsStoreOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.New(
		expense(2024, 11, 1, "Alimentação", "30.00", "Padaria"),
		expense(2024, 10, 5, "Alimentação", "450.00", "Compras do Mês"),
	)
	x, err := NewExportService(s, export.CSV, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "relatorio_despesas.csv")
	n, err := x.Export(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\r\n")
	require.Equal(t, []string{
		"data,categoria,valor,descricao",
		"2024-11-01,Alimentação,30,Padaria",
		"2024-10-05,Alimentação,450,Compras do Mês",
	}, lines)
}

func TestExportService_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relatorio_despesas.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0o644))

	x, err := NewExportService(memory.New(expense(2024, 1, 1, "A", "1", "a")), export.CSV, nil)
	require.NoError(t, err)
	_, err = x.Export(context.Background(), path)
	require.NoError(t, err)

	data, _ := os.ReadFile(path)
	require.NotContains(t, string(data), "stale")
}

func TestExportService_EmptyStoreWritesNothing(t *testing.T) {
	x, err := NewExportService(memory.New(), export.CSV, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "relatorio_despesas.csv")
	_, err = x.Export(context.Background(), path)
	require.ErrorIs(t, err, core.ErrNothingToExport)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "no file is created")
}

func TestExportService_IOFailure(t *testing.T) {
	x, err := NewExportService(memory.New(expense(2024, 1, 1, "A", "1", "a")), export.CSV, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "missing-dir", "relatorio_despesas.csv")
	_, err = x.Export(context.Background(), path)
	require.ErrorIs(t, err, core.ErrExport)
}

func TestExportService_OtherFormats(t *testing.T) {
	for _, f := range []export.Format{export.XLSX, export.PDF} {
		x, err := NewExportService(memory.New(SeedExpenses()...), f, nil)
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "relatorio_despesas."+string(f))
		n, err := x.Export(context.Background(), path)
		require.NoError(t, err, f)
		require.Equal(t, 7, n)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Positive(t, info.Size())
	}
}

func TestNewExportService_UnknownFormat(t *testing.T) {
	_, err := NewExportService(memory.New(), "ods", nil)
	require.Error(t, err)
}
