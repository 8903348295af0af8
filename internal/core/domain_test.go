package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 3, 9, 17, 45, 0, 0, time.UTC)
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"05/10/2024", "2024-10-05", true},
		{"5/3/2024", "2024-03-05", true},
		{"29/02/2024", "2024-02-29", true},
		{"", "2025-03-09", true},
		{"31/02/2024", "", false},
		{"29/02/2023", "", false},
		{"2024-10-05", "", false},
		{"13/13/2024", "", false},
		{"amanhã", "", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in, now)
		if !tc.ok {
			require.True(t, errors.Is(err, ErrInvalidDate), "%q: %v", tc.in, err)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.out, d.Canonical())
	}
}

func TestDateFormats(t *testing.T) {
	d := NewDate(2024, 10, 5)
	require.Equal(t, "2024-10-05", d.Canonical())
	require.Equal(t, "05/10/2024", d.Display())
	require.Equal(t, 10, d.Month())
	require.Equal(t, 2024, d.Year())
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2025, 1, 1),
		Category:    "Cat",
		Amount:      decimal.NewFromInt(1),
		Description: "ok",
	}
	require.NoError(t, good.Validate())

	zeroAmount := good
	zeroAmount.Amount = decimal.Zero
	require.NoError(t, zeroAmount.Validate())

	noDate := good
	noDate.Date = Date{}
	require.ErrorIs(t, noDate.Validate(), ErrInvalidDate)

	negative := good
	negative.Amount = decimal.NewFromInt(-3)
	require.ErrorIs(t, negative.Validate(), ErrInvalidAmount)
}

func TestCleanText(t *testing.T) {
	decomposed := "Alimenta\u0063\u0327\u0061\u0303o"
	require.Equal(t, "Alimentação", CleanText("  "+decomposed+" "))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("10/2024")
	require.NoError(t, err)
	require.Equal(t, Period{Year: 2024, Month: 10}, p)
	require.Equal(t, "10/2024", p.String())

	p, err = ParsePeriod("1/2024")
	require.NoError(t, err)
	require.Equal(t, "01/2024", p.String())

	for _, bad := range []string{"", "10", "10/2024/1", "ab/2024", "10/abcd", "13/2024", "0/2024"} {
		_, err := ParsePeriod(bad)
		require.ErrorIs(t, err, ErrInvalidPeriod, bad)
	}
}

func TestPeriodContainsIsExact(t *testing.T) {
	jan := Period{Year: 2024, Month: 1}
	require.True(t, jan.Contains(NewDate(2024, 1, 31)))
	require.False(t, jan.Contains(NewDate(2024, 10, 1)))
	require.False(t, jan.Contains(NewDate(2023, 1, 1)))
}

func TestCategoryAmountBar(t *testing.T) {
	require.Equal(t, "", CategoryAmount{Percent: 1}.Bar())
	require.Equal(t, "█████", CategoryAmount{Percent: 11}.Bar())
}
