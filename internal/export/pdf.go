package export

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"despesas/internal/core"
)

// barMaxWidth is the width in mm of a 100% bar.
const barMaxWidth = 80.0

// WritePDF writes a printable report: the category breakdown with bars, then
// every expense.
func WritePDF(w io.Writer, expenses []core.Expense) error {
	a := core.Summarize(expenses)

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Relatório de Despesas", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Relatório de Despesas"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Total geral: R$ %s", core.FormatAmount(a.Total))))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Categoria com maior gasto: %s (R$ %s)", a.Top.Name, core.FormatAmount(a.Top.Amount))))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr("Distribuição por categoria"))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(70, 110, 170)
	for _, c := range a.ByCategory {
		pdf.Cell(45, 6, tr(c.Name))
		pdf.CellFormat(25, 6, core.FormatAmount(c.Amount), "", 0, "R", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d%%", c.Percent), "", 0, "R", false, 0, "")
		x, y := pdf.GetXY()
		if c.Percent > 0 {
			pdf.Rect(x+3, y+1, barMaxWidth*float64(c.Percent)/100, 4, "F")
		}
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Despesas")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 7, "Data", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Categoria", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Valor (R$)", "B", 0, "R", false, 0, "")
	pdf.CellFormat(100, 7, tr("Descrição"), "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range expenses {
		pdf.CellFormat(25, 6, e.Date.Display(), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(e.Category), "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, core.FormatAmount(e.Amount), "", 0, "R", false, 0, "")
		pdf.CellFormat(100, 6, tr(e.Description), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
