// internal/output/excel.go
package output

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// ExcelSheetName is the worksheet holding the entries
const ExcelSheetName = "Titles"

// Excel rejects longer cell values
const excelMaxCellLength = 32767

// ExcelWriter writes entries to an .xlsx workbook, one row per entry with the
// link stored as a hyperlink. The workbook is saved on Close.
type ExcelWriter struct {
	file     *excelize.File
	filePath string
	row      int
}

// NewExcelWriter creates a workbook with a styled header row
func NewExcelWriter(filePath string) (*ExcelWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExcelSheetName); err != nil {
		f.Close()
		return nil, err
	}

	w := &ExcelWriter{file: f, filePath: filePath, row: 1}
	if err := w.writeHeader(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}
	return w, nil
}

func (w *ExcelWriter) writeHeader() error {
	if err := w.file.SetSheetRow(ExcelSheetName, "A1", &[]interface{}{"Title", "Link"}); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(ExcelSheetName, "A1", "B1", style); err != nil {
		return err
	}
	if err := w.file.SetColWidth(ExcelSheetName, "A", "A", 60); err != nil {
		return err
	}
	if err := w.file.SetColWidth(ExcelSheetName, "B", "B", 70); err != nil {
		return err
	}
	return w.file.SetPanes(ExcelSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// WriteEntries appends entries below the rows already written
func (w *ExcelWriter) WriteEntries(entries []types.Entry) error {
	for _, e := range entries {
		w.row++
		row := strconv.Itoa(w.row)
		values := []interface{}{truncateCell(e.Title), truncateCell(e.Link)}
		if err := w.file.SetSheetRow(ExcelSheetName, "A"+row, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", w.row, err)
		}
		if e.Link != "" {
			if err := w.file.SetCellHyperLink(ExcelSheetName, "B"+row, e.Link, "External"); err != nil {
				return fmt.Errorf("failed to link row %d: %w", w.row, err)
			}
		}
	}
	return nil
}

// Close saves the workbook
func (w *ExcelWriter) Close() error {
	if w.file == nil {
		return nil
	}
	defer func() {
		w.file.Close()
		w.file = nil
	}()

	if w.row > 1 {
		ref := "A1:B" + strconv.Itoa(w.row)
		if err := w.file.AutoFilter(ExcelSheetName, ref, nil); err != nil {
			return fmt.Errorf("failed to add auto filter: %w", err)
		}
	}
	if err := w.file.SaveAs(w.filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func truncateCell(s string) string {
	if r := []rune(s); len(r) > excelMaxCellLength {
		return string(r[:excelMaxCellLength])
	}
	return s
}
