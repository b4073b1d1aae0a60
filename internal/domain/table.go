package domain

import "slices"

// Canonical column names of a document table.
const (
	ColumnCluster  = "cluster"
	ColumnDoc      = "doc"
	ColumnVerified = "verified_purchase"
)

// Document is one row of a document table.
type Document struct {
	Cluster ClusterID
	Text    string
	// Verified is nil when the cell is null or the column is absent.
	Verified *bool
}

// Table is an ordered collection of documents together with the columns
// its source carried. The zero Table has no columns and fails Validate.
type Table struct {
	docs    []Document
	columns []string
}

// NewTable validates that columns contains the cluster and doc columns and
// returns a table over a copy of docs.
func NewTable(columns []string, docs []Document) (Table, error) {
	t := Table{docs: slices.Clone(docs), columns: slices.Clone(columns)}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Validate reports the first required column missing from the table.
func (t Table) Validate() error {
	for _, col := range []string{ColumnCluster, ColumnDoc} {
		if !t.HasColumn(col) {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

// HasColumn reports whether the table source carried the named column.
func (t Table) HasColumn(name string) bool { return slices.Contains(t.columns, name) }

// HasVerified reports whether the verified purchase column is present.
func (t Table) HasVerified() bool { return t.HasColumn(ColumnVerified) }

// Columns returns the column names of the table.
func (t Table) Columns() []string { return slices.Clone(t.columns) }

// Len returns the number of rows.
func (t Table) Len() int { return len(t.docs) }

// Documents returns a copy of the rows in table order.
func (t Table) Documents() []Document { return slices.Clone(t.docs) }

// ClusterIDs returns the distinct cluster identifiers in ascending order.
func (t Table) ClusterIDs() []ClusterID {
	ids := make([]ClusterID, 0, len(t.docs))
	for _, d := range t.docs {
		ids = append(ids, d.Cluster)
	}
	return SortClusterIDs(ids)
}

// Partition groups rows by cluster, preserving table order inside each
// group.
func (t Table) Partition() map[ClusterID][]Document {
	groups := make(map[ClusterID][]Document)
	for _, d := range t.docs {
		groups[d.Cluster] = append(groups[d.Cluster], d)
	}
	return groups
}

// Select returns the rows of one cluster in table order.
func (t Table) Select(id ClusterID) []Document {
	var out []Document
	for _, d := range t.docs {
		if d.Cluster == id {
			out = append(out, d)
		}
	}
	return out
}
