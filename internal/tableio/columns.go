// Package tableio loads document tables and label maps and writes summary
// tables to CSV or XLSX.
package tableio

import (
	"errors"
	"fmt"
	"strings"

	"clustersum/internal/domain"
)

// Columns names the source columns that map onto the canonical cluster,
// doc and verified_purchase columns.
type Columns struct {
	Cluster  string
	Doc      string
	Verified string
}

// DefaultColumns returns the canonical column names.
func DefaultColumns() Columns {
	return Columns{
		Cluster:  domain.ColumnCluster,
		Doc:      domain.ColumnDoc,
		Verified: domain.ColumnVerified,
	}
}

func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	if c.Cluster == "" {
		c.Cluster = d.Cluster
	}
	if c.Doc == "" {
		c.Doc = d.Doc
	}
	if c.Verified == "" {
		c.Verified = d.Verified
	}
	return c
}

var errBadFlag = errors.New("not a boolean")

// parseVerified reads a verified flag. Empty and NA-like cells are null.
func parseVerified(s string) (*bool, error) {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "na", "nan", "null", "none":
		return nil, nil
	case "true", "t", "yes", "y", "1", "1.0":
		v = true
	case "false", "f", "no", "n", "0", "0.0":
		v = false
	default:
		return nil, errBadFlag
	}
	return &v, nil
}

// buildTable maps a header and its records onto a domain.Table. Records
// may be shorter than the header; missing cells read as empty.
func buildTable(header []string, records [][]string, cols Columns) (domain.Table, error) {
	cols = cols.withDefaults()
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var present []string
	clusterIdx, ok := index[cols.Cluster]
	if ok {
		present = append(present, domain.ColumnCluster)
	}
	docIdx, ok := index[cols.Doc]
	if ok {
		present = append(present, domain.ColumnDoc)
	}
	verifiedIdx, hasVerified := index[cols.Verified]
	if hasVerified {
		present = append(present, domain.ColumnVerified)
	}
	// validate before touching rows
	if _, err := domain.NewTable(present, nil); err != nil {
		return domain.Table{}, err
	}

	cell := func(rec []string, i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	docs := make([]domain.Document, 0, len(records))
	for r, rec := range records {
		d := domain.Document{
			Cluster: domain.ParseClusterID(cell(rec, clusterIdx)),
			Text:    cell(rec, docIdx),
		}
		if hasVerified {
			raw := cell(rec, verifiedIdx)
			v, err := parseVerified(raw)
			if err != nil {
				return domain.Table{}, &domain.ParseError{Row: r + 2, Column: cols.Verified, Value: raw, Err: err}
			}
			d.Verified = v
		}
		docs = append(docs, d)
	}
	table, err := domain.NewTable(present, docs)
	if err != nil {
		return domain.Table{}, fmt.Errorf("build table: %w", err)
	}
	return table, nil
}
