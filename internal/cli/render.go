package cli

import (
	"fmt"
	"io"
	"strings"

	"despesas/internal/core"
)

func renderList(w io.Writer, expenses []core.Expense) {
	fmt.Fprintf(w, "%-12s | %-15s | %-10s | %s\n", "DATA", "CATEGORIA", "VALOR (R$)", "DESCRIÇÃO")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, e := range expenses {
		fmt.Fprintf(w, "%-12s | %-15s | %-10s | %s\n",
			e.Date.Display(), e.Category, core.FormatAmount(e.Amount), e.Description)
	}
}

func renderAnalysis(w io.Writer, a core.Analysis) {
	fmt.Fprintf(w, "--- Análise de Gastos (Total Geral: R$ %s) ---\n", core.FormatAmount(a.Total))
	fmt.Fprintf(w, "🚨 Categoria com maior gasto: %s (R$ %s)\n\n", a.Top.Name, core.FormatAmount(a.Top.Amount))

	fmt.Fprintln(w, "--- Gráfico de Distribuição ---")
	for _, c := range a.ByCategory {
		fmt.Fprintf(w, "%-15s R$ %-8s | %s (%d%%)\n", c.Name, core.FormatAmount(c.Amount), c.Bar(), c.Percent)
	}
}

// renderMonth prints the matches with their canonical dates, then the sum.
func renderMonth(w io.Writer, label string, m core.MonthOverview) {
	fmt.Fprintf(w, "\n--- Relatório de %s ---\n", label)
	for _, e := range m.Expenses {
		fmt.Fprintf(w, "%s - %s: R$ %s\n", e.Date.Canonical(), e.Description, core.FormatAmount(e.Amount))
	}
	fmt.Fprintf(w, "\n💰 Total gasto no mês: R$ %s\n", core.FormatAmount(m.Total))
}
