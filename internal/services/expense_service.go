package services

import (
	"context"
	"fmt"
	"time"

	"despesas/internal/core"
	"despesas/internal/log"
	"despesas/internal/store"
)

// EventPublisher receives every successfully recorded expense.
type EventPublisher interface {
	Enqueue(e core.Expense) bool
}

// ExpenseService records new expenses and loads the sample data set.
type ExpenseService struct {
	store     store.Store
	publisher EventPublisher
	logger    *log.Logger
	now       func() time.Time
}

// NewExpenseService wires the recorder. publisher may be nil.
func NewExpenseService(s store.Store, publisher EventPublisher, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExpenseService{
		store:     s,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentExpense),
		now:       time.Now,
	}
}

// SetClock replaces the source of "today" used for empty dates.
func (s *ExpenseService) SetClock(now func() time.Time) {
	s.now = now
}

// Add validates raw user input and appends one expense. Nothing is stored when
// the amount or the date cannot be parsed.
func (s *ExpenseService) Add(ctx context.Context, description, category, rawAmount, rawDate string) (core.Expense, error) {
	amount, err := core.ParseAmount(rawAmount)
	if err != nil {
		s.logger.DebugContext(ctx, "Rejected amount", log.FieldError, err)
		return core.Expense{}, err
	}
	date, err := core.ParseDate(rawDate, s.now())
	if err != nil {
		s.logger.DebugContext(ctx, "Rejected date", log.FieldError, err)
		return core.Expense{}, err
	}

	e := core.Expense{
		Date:        date,
		Category:    core.CleanText(category),
		Amount:      amount,
		Description: core.CleanText(description),
	}

	ref, err := s.store.Append(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	fields := log.NewFields().
		WithOperation(log.OpAppend).
		WithExpense(e.Date.Canonical(), e.Category, e.Amount, e.Description).
		With("ref", ref)
	s.logger.InfoContext(ctx, "Expense recorded", fields.ToSlice()...)

	s.publish(ctx, e)
	return e, nil
}

// LoadSeed replaces the whole store with the sample data set.
func (s *ExpenseService) LoadSeed(ctx context.Context) (int, error) {
	seed := SeedExpenses()
	if err := s.store.Reset(ctx, seed); err != nil {
		return 0, fmt.Errorf("load seed data: %w", err)
	}
	s.logger.InfoContext(ctx, "Seed data loaded", log.FieldOperation, log.OpSeed, log.FieldCount, len(seed))
	return len(seed), nil
}

func (s *ExpenseService) publish(ctx context.Context, e core.Expense) {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "Event publisher not available, skipping event")
		return
	}
	// Dropped events are logged by the publisher; recording already succeeded.
	s.publisher.Enqueue(e)
}
