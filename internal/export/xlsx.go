package export

import (
	"fmt"
	"io"

	"dario.cat/mergo"
	"github.com/xuri/excelize/v2"

	"despesas/internal/core"
)

const (
	expensesSheet   = "Despesas"
	categoriesSheet = "Categorias"
)

// WriteXLSX writes a workbook with the expense list and a per-category sheet.
func WriteXLSX(w io.Writer, expenses []core.Expense) error {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	_ = xlsx.SetAppProps(&excelize.AppProperties{
		Application: "despesas",
		DocSecurity: 0,
	})

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	if err := xlsx.SetSheetName(sheet, expensesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	writeExpensesSheet(xlsx, expensesSheet, expenses)

	if _, err := xlsx.NewSheet(categoriesSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	writeCategoriesSheet(xlsx, categoriesSheet, core.Summarize(expenses))

	xlsx.SetActiveSheet(0)

	if _, err := xlsx.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeExpensesSheet(xlsx *excelize.File, sheet string, expenses []core.Expense) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 12)
	_ = xlsx.SetColWidth(sheet, "B", "B", 20)
	_ = xlsx.SetColWidth(sheet, "C", "C", 12)
	_ = xlsx.SetColWidth(sheet, "D", "D", 40)

	row := 1
	for i, hdr := range csvHeader {
		_ = xlsx.SetCellValue(sheet, cell('A'+rune(i), row), hdr)
	}
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom")))
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('D', row), style)
	row++

	amountStyle, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), amountFormat()))
	for _, e := range expenses {
		_ = xlsx.SetCellValue(sheet, cell('A', row), e.Date.Canonical())
		_ = xlsx.SetCellValue(sheet, cell('B', row), e.Category)
		_ = xlsx.SetCellValue(sheet, cell('C', row), e.Amount.InexactFloat64())
		_ = xlsx.SetCellValue(sheet, cell('D', row), e.Description)
		_ = xlsx.SetCellStyle(sheet, cell('C', row), cell('C', row), amountStyle)
		row++
	}

	_ = xlsx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeCategoriesSheet(xlsx *excelize.File, sheet string, a core.Analysis) {
	_ = xlsx.SetColWidth(sheet, "A", "A", 20)
	_ = xlsx.SetColWidth(sheet, "B", "C", 12)
	_ = xlsx.SetColWidth(sheet, "D", "D", 55)

	row := 1
	_ = xlsx.SetCellValue(sheet, cell('A', row), "categoria")
	_ = xlsx.SetCellValue(sheet, cell('B', row), "valor")
	_ = xlsx.SetCellValue(sheet, cell('C', row), "percentual")
	_ = xlsx.SetCellValue(sheet, cell('D', row), "distribuicao")
	style, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), thinBorder("bottom")))
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('D', row), style)
	row++

	amountStyle, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), amountFormat()))
	topStyle, _ := xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), highlight()))
	for _, c := range a.ByCategory {
		_ = xlsx.SetCellValue(sheet, cell('A', row), c.Name)
		_ = xlsx.SetCellValue(sheet, cell('B', row), c.Amount.InexactFloat64())
		_ = xlsx.SetCellInt(sheet, cell('C', row), c.Percent)
		_ = xlsx.SetCellValue(sheet, cell('D', row), c.Bar())
		_ = xlsx.SetCellStyle(sheet, cell('B', row), cell('B', row), amountStyle)
		if c.Name == a.Top.Name {
			_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('A', row), topStyle)
		}
		row++
	}

	_ = xlsx.SetCellValue(sheet, cell('A', row), "Total")
	_ = xlsx.SetCellValue(sheet, cell('B', row), a.Total.InexactFloat64())
	style, _ = xlsx.NewStyle(mergeStyles(defaultStyle(), fontBold(), amountFormat(), thickBorder("top")))
	_ = xlsx.SetCellStyle(sheet, cell('A', row), cell('D', row), style)
}

func cell(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}

func defaultStyle() *excelize.Style {
	return &excelize.Style{
		// solid white
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FFFFFF"},
			Pattern: 1,
		},
	}
}

func amountFormat() *excelize.Style {
	format := "#,##0.00"
	return &excelize.Style{
		CustomNumFmt: &format,
	}
}

func fontBold() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
}

func thinBorder(where ...string) *excelize.Style {
	s := &excelize.Style{}
	for _, w := range where {
		s.Border = append(s.Border, excelize.Border{
			Type:  w,
			Color: "#000000",
			Style: 1,
		})
	}
	return s
}

func thickBorder(where ...string) *excelize.Style {
	s := &excelize.Style{}
	for _, w := range where {
		s.Border = append(s.Border, excelize.Border{
			Type:  w,
			Color: "#000000",
			Style: 2,
		})
	}
	return s
}

func highlight() *excelize.Style {
	return &excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FFF2CC"},
			Pattern: 1,
		},
	}
}

func mergeStyles(ext ...*excelize.Style) *excelize.Style {
	if len(ext) == 0 {
		return nil
	}
	for _, e := range ext[1:] {
		_ = mergo.Merge(ext[0], e, mergo.WithOverride)
	}
	return ext[0]
}
