package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// BarBlock is one unit of the distribution chart, worth about 2%.
const BarBlock = "█"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name    string
	Amount  decimal.Decimal
	Percent int // share of the grand total, truncated
}

// Bar draws the share as Percent/2 blocks.
func (c CategoryAmount) Bar() string {
	return strings.Repeat(BarBlock, c.Percent/2)
}

// Analysis is the spending breakdown over every stored expense.
type Analysis struct {
	Total      decimal.Decimal
	Top        CategoryAmount
	ByCategory []CategoryAmount // order of first appearance
}

// Period is a calendar month.
type Period struct {
	Year  int
	Month int // 1-12
}

// ParsePeriod reads an MM/YYYY token.
func ParsePeriod(raw string) (Period, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, raw)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: bad month in %q", ErrInvalidPeriod, raw)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || year < 0 {
		return Period{}, fmt.Errorf("%w: bad year in %q", ErrInvalidPeriod, raw)
	}
	return Period{Year: year, Month: month}, nil
}

// Contains reports whether d falls in the period.
func (p Period) Contains(d Date) bool {
	return d.Year() == p.Year && d.Month() == p.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%02d/%04d", p.Month, p.Year)
}

// MonthOverview is the list of expenses in one period and their sum.
type MonthOverview struct {
	Period   Period
	Total    decimal.Decimal
	Expenses []Expense
}

// Summarize computes per-category totals and shares. Categories appear in
// order of first appearance; Top is the first of them to reach the maximum.
func Summarize(expenses []Expense) Analysis {
	var (
		a     Analysis
		index = make(map[string]int)
	)
	a.Total = decimal.Zero
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(a.ByCategory)
			index[e.Category] = i
			a.ByCategory = append(a.ByCategory, CategoryAmount{Name: e.Category, Amount: decimal.Zero})
		}
		a.ByCategory[i].Amount = a.ByCategory[i].Amount.Add(e.Amount)
		a.Total = a.Total.Add(e.Amount)
	}

	for i := range a.ByCategory {
		a.ByCategory[i].Percent = SharePercent(a.ByCategory[i].Amount, a.Total)
		if i == 0 || a.ByCategory[i].Amount.GreaterThan(a.Top.Amount) {
			a.Top = a.ByCategory[i]
		}
	}
	return a
}
