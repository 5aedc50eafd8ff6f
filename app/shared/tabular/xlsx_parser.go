package tabular

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser parses the first sheet of an XLSX workbook.
type XLSXParser struct{}

// NewXLSXParser creates a new XLSX parser.
func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

// Parse reads the first sheet of the workbook into a Table.
func (p *XLSXParser) Parse(data []byte) (*Table, error) {
	wb, err := OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	if len(wb.SheetNames) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}
	return wb.Sheets[wb.SheetNames[0]], nil
}

// Workbook holds every sheet of an XLSX file as a Table.
type Workbook struct {
	SheetNames []string
	Sheets     map[string]*Table
}

// Sheet returns the named sheet, or nil when the workbook lacks it.
func (w *Workbook) Sheet(name string) *Table {
	return w.Sheets[name]
}

// OpenWorkbook reads all sheets of an XLSX file. Cell values are read raw so
// numbers keep their stored precision.
func OpenWorkbook(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		if strings.Contains(err.Error(), "zip: not a valid zip file") {
			return nil, fmt.Errorf("failed to open XLSX file: %w. (Hint: If this is a CSV file, please ensure it has a .csv extension)", err)
		}
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	wb := &Workbook{Sheets: make(map[string]*Table)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		wb.SheetNames = append(wb.SheetNames, name)
		wb.Sheets[name] = NewTable(rows)
	}
	return wb, nil
}

// Sheet is one named sheet to be written by WriteWorkbook.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// WriteWorkbook renders sheets into an XLSX file, in order.
func WriteWorkbook(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.Name); err != nil {
				return nil, fmt.Errorf("failed to name sheet %q: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", sh.Name, err)
		}

		header := make([]any, len(sh.Headers))
		for j, h := range sh.Headers {
			header[j] = h
		}
		if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write header of sheet %q: %w", sh.Name, err)
		}
		for j, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return nil, err
			}
			r := row
			if err := f.SetSheetRow(sh.Name, cell, &r); err != nil {
				return nil, fmt.Errorf("failed to write row %d of sheet %q: %w", j+2, sh.Name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return buf.Bytes(), nil
}
