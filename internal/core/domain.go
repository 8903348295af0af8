package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

const (
	// CanonicalLayout is the stored form of a date; its lexical order is chronological.
	CanonicalLayout = "2006-01-02"
	// DisplayLayout is how dates are shown to the user.
	DisplayLayout = "02/01/2006"

	// inputLayout accepts one or two digit day and month.
	inputLayout = "2/1/2006"
)

type (
	Date struct {
		time.Time
	}

	Expense struct {
		Date        Date
		Category    string // Free text, grouping key
		Amount      decimal.Decimal
		Description string
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrNoData            = errors.New("no data to analyze")
	ErrNothingToExport   = errors.New("nothing to export")
	ErrExport            = errors.New("export failed")
	ErrInvalidMenuChoice = errors.New("invalid menu choice")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock part of t, keeping its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate reads a D/M/YYYY date. An empty input yields the calendar day of now.
func ParseDate(raw string, now time.Time) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DateOf(now), nil
	}
	t, err := time.Parse(inputLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return Date{Time: t}, nil
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Canonical returns the date as YYYY-MM-DD.
func (d Date) Canonical() string {
	return d.Format(CanonicalLayout)
}

// Display returns the date as DD/MM/YYYY.
func (d Date) Display() string {
	return d.Format(DisplayLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("%w: negative value %s", ErrInvalidAmount, e.Amount)
	}
	return nil
}

// CleanText trims s and puts it in Unicode NFC, so that "Alimentação" groups
// with itself whether the accents were typed composed or decomposed.
func CleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
