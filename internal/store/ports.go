package store

import (
	"context"

	"despesas/internal/core"
)

// Ports for the expense store backends.
type (
	ExpenseWriter interface {
		// Append adds e at the end of the collection and returns a backend reference.
		Append(ctx context.Context, e core.Expense) (ref string, err error)
	}

	ExpenseResetter interface {
		// Reset replaces the whole collection with expenses.
		Reset(ctx context.Context, expenses []core.Expense) error
	}

	// ExpenseLister returns every stored expense in insertion order.
	ExpenseLister interface {
		All(ctx context.Context) ([]core.Expense, error)
	}

	Store interface {
		ExpenseWriter
		ExpenseResetter
		ExpenseLister
	}
)
