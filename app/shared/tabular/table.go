// Package tabular turns CSV text and XLSX sheets into header-keyed records.
package tabular

import (
	"fmt"
	"strings"
)

// Record maps a header to the cell found under it.
type Record map[string]string

// Get returns the trimmed cell for the first of keys present in the record.
func (r Record) Get(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Table is a parsed sheet: headers in file order and one record per data row.
type Table struct {
	Headers []string
	Rows    []Record
}

// NewTable builds a table from raw rows, using the first row as header.
// Blank rows are skipped, missing trailing cells become "" and a later
// duplicate header shadows an earlier one.
func NewTable(rows [][]string) *Table {
	if len(rows) == 0 {
		return &Table{}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		headers[i] = h
	}

	t := &Table{Headers: headers}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
