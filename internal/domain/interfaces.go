package domain

import "context"

// TermExtractor ranks the vocabulary of a document set and returns the
// top n terms.
type TermExtractor interface {
	TopTerms(documents []string, n int) []string
}

// ClusterSummarizer turns a labeled document table into one summary record
// per cluster.
type ClusterSummarizer interface {
	Summarize(ctx context.Context, table Table, labels LabelMap) (SummaryTable, error)
}
