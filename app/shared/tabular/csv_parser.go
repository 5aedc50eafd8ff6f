package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVParser parses comma separated text.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads CSV data into a Table.
func (p *CSVParser) Parse(data []byte) (*Table, error) {
	return NewTable(SplitCSV(data)), nil
}

// SplitCSV splits CSV text into raw rows. Quoted fields may contain commas,
// newlines and "" escapes. Rows end at \n or \r\n; a bare \r is dropped.
func SplitCSV(data []byte) [][]string {
	// Strip UTF-8 BOM if present
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	var (
		rows     [][]string
		row      []string
		cell     []byte
		inQuotes bool
	)

	for i := 0; i < len(data); i++ {
		ch := data[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(data) && data[i+1] == '"' {
					cell = append(cell, '"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell = append(cell, ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, string(cell))
			cell = cell[:0]
		case '\n':
			row = append(row, string(cell))
			rows = append(rows, row)
			row = nil
			cell = cell[:0]
		case '\r':
		default:
			cell = append(cell, ch)
		}
	}

	if len(cell) > 0 || len(row) > 0 {
		row = append(row, string(cell))
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV renders headers and rows as CSV. Fields containing quotes,
// commas or line breaks are quoted.
func WriteCSV(headers []string, rows []Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	line := make([]string, len(headers))
	for _, r := range rows {
		for i, h := range headers {
			line[i] = r[h]
		}
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
