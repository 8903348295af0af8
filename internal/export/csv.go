package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"despesas/internal/core"
)

var csvHeader = []string{"data", "categoria", "valor", "descricao"}

// WriteCSV writes a header and one row per expense. Amounts are written as
// parsed, without padding to two decimals.
func WriteCSV(w io.Writer, expenses []core.Expense) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.Date.Canonical(),
			e.Category,
			e.Amount.String(),
			e.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
