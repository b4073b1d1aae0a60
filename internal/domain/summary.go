package domain

import (
	"strconv"
	"strings"
)

// NotAvailable is the rendering of a ratio that could not be computed.
const NotAvailable = "NA"

// Ratio is a verification ratio rounded to two decimals, or the "not
// available" sentinel.
type Ratio struct {
	value float64
	valid bool
}

// RatioOf rounds v to two decimals. Rounding works on the exact binary
// value of v, so a tie such as 0.125 rounds half to even (0.12).
func RatioOf(v float64) Ratio {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return NARatio()
	}
	return Ratio{value: r, valid: true}
}

// NARatio returns the "not available" sentinel.
func NARatio() Ratio { return Ratio{} }

// Value returns the ratio and whether it is available.
func (r Ratio) Value() (float64, bool) { return r.value, r.valid }

// String renders NA, or the shortest decimal form keeping at least one
// fractional digit (1.0, 0.5, 0.67).
func (r Ratio) String() string {
	if !r.valid {
		return NotAvailable
	}
	s := strconv.FormatFloat(r.value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// SummaryRecord describes one cluster.
type SummaryRecord struct {
	ClusterID     ClusterID
	Label         string
	TopTerms      string
	NumReviews    int
	VerifiedRatio Ratio
	Examples      string
}

// Row returns the record as strings in SummaryHeader order.
func (r SummaryRecord) Row() []string {
	return []string{
		r.ClusterID.String(),
		r.Label,
		r.TopTerms,
		strconv.Itoa(r.NumReviews),
		r.VerifiedRatio.String(),
		r.Examples,
	}
}

// SummaryTable holds one record per cluster, ascending by cluster ID.
type SummaryTable []SummaryRecord

// SummaryHeader returns the fixed column order of a summary table.
func SummaryHeader() []string {
	return []string{"Cluster ID", "Label", "Top Terms", "Num Reviews", "Verified Ratio", "Examples"}
}

// Rows returns every record as a string row.
func (t SummaryTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, r := range t {
		rows[i] = r.Row()
	}
	return rows
}
