package tableio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"clustersum/internal/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// StdinPath is the input path that stands for a stream instead of a file.
const StdinPath = "-"

// DetectFormat returns format when set, otherwise the extension of path.
func DetectFormat(path, format string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	switch f := strings.ToLower(format); f {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX, "xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

// Load reads a document table from path in the given or detected format.
func Load(path, format, sheet string, cols Columns) (domain.Table, error) {
	f, err := DetectFormat(path, format)
	if err != nil {
		return domain.Table{}, err
	}
	if f == FormatXLSX {
		return LoadXLSX(path, sheet, cols)
	}
	return LoadCSV(path, cols)
}

// Read reads a document table from r. An empty format means CSV.
func Read(r io.Reader, format, sheet string, cols Columns) (domain.Table, error) {
	if format == "" {
		format = FormatCSV
	}
	f, err := DetectFormat("", format)
	if err != nil {
		return domain.Table{}, err
	}
	if f == FormatXLSX {
		return ReadXLSX(r, sheet, cols)
	}
	return ReadCSV(r, cols)
}

// Save writes a summary table to path in the given or detected format.
func Save(path, format string, table domain.SummaryTable) error {
	f, err := DetectFormat(path, format)
	if err != nil {
		return err
	}
	if f == FormatXLSX {
		return SaveXLSX(path, DefaultSheet, table)
	}
	return SaveCSV(path, table)
}
