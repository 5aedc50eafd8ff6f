package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFileType is returned for extensions no parser handles.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrSpreadsheetUnavailable is returned when spreadsheet support is switched off.
	ErrSpreadsheetUnavailable = errors.New("spreadsheet support is not available; use the .csv format instead")
)

// Format is a tabular file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Parser defines the interface for tabular parsers.
type Parser interface {
	Parse(data []byte) (*Table, error)
}

// ParserFactory defines the interface for creating parsers.
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension.
type Factory struct {
	spreadsheets bool
}

// NewFactory creates a parser factory. With spreadsheets false every XLSX
// request fails with ErrSpreadsheetUnavailable.
func NewFactory(spreadsheets bool) *Factory {
	return &Factory{spreadsheets: spreadsheets}
}

// SpreadsheetsEnabled reports whether XLSX files can be handled.
func (f *Factory) SpreadsheetsEnabled() bool {
	return f.spreadsheets
}

// DetectFormat maps a filename to its tabular format.
func DetectFormat(filename string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm", ".xls":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}

// GetParser returns the appropriate parser for the given filename.
func (f *Factory) GetParser(filename string) (Parser, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if format == FormatXLSX {
		if !f.spreadsheets {
			return nil, ErrSpreadsheetUnavailable
		}
		return NewXLSXParser(), nil
	}
	return NewCSVParser(), nil
}
