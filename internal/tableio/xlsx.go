package tableio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"clustersum/internal/domain"
)

// DefaultSheet names the sheet written by SaveXLSX when none is given.
const DefaultSheet = "Summary"

// LoadXLSX reads a document table from an Excel workbook. An empty sheet
// name selects the first sheet.
func LoadXLSX(path, sheet string, cols Columns) (domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet, cols)
}

// ReadXLSX reads a document table from an Excel workbook stream.
func ReadXLSX(r io.Reader, sheet string, cols Columns) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet, cols)
}

func readWorkbook(f *excelize.File, sheet string, cols Columns) (domain.Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return domain.Table{}, &domain.MissingColumnError{Column: domain.ColumnCluster}
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return domain.Table{}, &domain.MissingColumnError{Column: domain.ColumnCluster}
	}
	return buildTable(rows[0], rows[1:], cols)
}

// SaveXLSX writes a summary table to a single-sheet workbook. Num Reviews
// and available ratios are stored as numbers.
func SaveXLSX(path, sheet string, table domain.SummaryTable) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, len(domain.SummaryHeader()))
	for _, h := range domain.SummaryHeader() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range table {
		var ratio any = rec.VerifiedRatio.String()
		if v, ok := rec.VerifiedRatio.Value(); ok {
			ratio = v
		}
		row := []any{rec.ClusterID.String(), rec.Label, rec.TopTerms, rec.NumReviews, ratio, rec.Examples}
		if rec.ClusterID.IsInt() {
			row[0] = rec.ClusterID.Int()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(sheet, "C", "C", 50); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "F", "F", 80); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
