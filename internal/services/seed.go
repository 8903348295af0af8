package services

import (
	"github.com/shopspring/decimal"

	"despesas/internal/core"
)

// SeedExpenses returns the fixed sample data set used to try the reports
// without typing entries by hand.
func SeedExpenses() []core.Expense {
	return []core.Expense{
		seed(2024, 10, 5, "Alimentação", "450.00", "Compras do Mês"),
		seed(2024, 10, 10, "Transporte", "25.90", "Uber"),
		seed(2024, 10, 15, "Lazer", "120.00", "Cinema e Jantar"),
		seed(2024, 11, 1, "Alimentação", "30.00", "Padaria"),
		seed(2024, 11, 2, "Educação", "89.90", "Livro Python"),
		seed(2024, 11, 5, "Transporte", "4.50", "Ônibus"),
		seed(2024, 11, 20, "Saúde", "200.00", "Consulta Médica"),
	}
}

func seed(y, m, d int, category, amount, description string) core.Expense {
	return core.Expense{
		Date:        core.NewDate(y, m, d),
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
	}
}
