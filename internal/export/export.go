// Package export renders the stored expenses to flat files. Every writer keeps
// the order it is given; callers pass store order, not date order.
package export

import (
	"fmt"
	"io"

	"despesas/internal/core"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

// Writer renders expenses to w.
type Writer func(w io.Writer, expenses []core.Expense) error

// WriterFor returns the writer for a configured format.
func WriterFor(f Format) (Writer, error) {
	switch f {
	case CSV:
		return WriteCSV, nil
	case XLSX:
		return WriteXLSX, nil
	case PDF:
		return WritePDF, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", f)
	}
}
