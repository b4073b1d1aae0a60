package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"clustersum/internal/domain"
)

// ReadCSV reads a document table from CSV. The first record is the header.
func ReadCSV(r io.Reader, cols Columns) (domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Table{}, &domain.MissingColumnError{Column: domain.ColumnCluster}
		}
		return domain.Table{}, fmt.Errorf("read header: %w", err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read csv: %w", err)
	}
	return buildTable(header, records, cols)
}

// LoadCSV reads a document table from a CSV file.
func LoadCSV(path string, cols Columns) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, cols)
}

// WriteCSV writes a summary table with the SummaryHeader columns.
func WriteCSV(w io.Writer, table domain.SummaryTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.SummaryHeader()); err != nil {
		return err
	}
	if err := cw.WriteAll(table.Rows()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// SaveCSV writes a summary table to path.
func SaveCSV(path string, table domain.SummaryTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
