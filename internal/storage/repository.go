package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"despesas/internal/core"
	"despesas/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository keeps expenses in a private in-memory SQLite database.
// Nothing is written to disk; the data lives as long as the repository.
type SQLiteRepository struct {
	db  *sql.DB
	dsn string
}

// NewSQLiteRepository opens a fresh in-memory database. An empty name picks a
// random one, so independent repositories never share rows.
func NewSQLiteRepository(name string) (*SQLiteRepository, error) {
	if name == "" {
		name = "despesas-" + uuid.NewString()
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// The shared in-memory database disappears with its last connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, dsn: dsn}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.ExpenseWriter
func (r *SQLiteRepository) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	id, err := insertExpense(ctx, r.db, e)
	if err != nil {
		return "", fmt.Errorf("create expense: %w", err)
	}

	slog.DebugContext(ctx, "Expense saved to SQLite",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpAppend,
		"id", id,
		log.FieldDate, e.Date.Canonical(),
		log.FieldCategory, e.Category,
		log.FieldAmount, e.Amount.String())

	return strconv.FormatInt(id, 10), nil
}

// Reset implements store.ExpenseResetter
func (r *SQLiteRepository) Reset(ctx context.Context, expenses []core.Expense) error {
	for i, e := range expenses {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("expense %d: %w", i, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	for _, e := range expenses {
		if _, err := insertExpense(ctx, tx, e); err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}

	slog.DebugContext(ctx, "Expenses replaced in SQLite",
		log.FieldComponent, log.ComponentStorage,
		log.FieldOperation, log.OpReset,
		log.FieldCount, len(expenses))
	return nil
}

// All implements store.ExpenseLister
func (r *SQLiteRepository) All(ctx context.Context) ([]core.Expense, error) {
	return r.query(ctx, `SELECT date, category, amount, description FROM expenses ORDER BY id`)
}

// ListMonth returns the expenses of one calendar month in insertion order.
func (r *SQLiteRepository) ListMonth(ctx context.Context, p core.Period) ([]core.Expense, error) {
	prefix := fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	return r.query(ctx,
		`SELECT date, category, amount, description FROM expenses WHERE substr(date, 1, 7) = ? ORDER BY id`,
		prefix)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertExpense(ctx context.Context, db execer, e core.Expense) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO expenses (date, category, amount, description) VALUES (?, ?, ?, ?)`,
		e.Date.Canonical(), e.Category, e.Amount.String(), e.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) query(ctx context.Context, q string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var date, category, amount, description string
		if err := rows.Scan(&date, &category, &amount, &description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		t, err := time.Parse(core.CanonicalLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		expenses = append(expenses, core.Expense{
			Date:        core.Date{Time: t},
			Category:    category,
			Amount:      d,
			Description: description,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}
