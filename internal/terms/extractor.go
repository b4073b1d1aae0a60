// Package terms ranks the vocabulary of a document set by mean TF-IDF
// weight.
package terms

import (
	"cmp"
	"errors"
	"slices"

	"clustersum/internal/domain"
)

// DefaultTermCount is the number of terms returned when callers have no
// preference.
const DefaultTermCount = 10

// Score is a vocabulary term with its mean weight over a document set.
type Score struct {
	Term   string
	Weight float64
}

// Extractor fits a fresh Vectorizer on every call; it holds configuration
// only and is safe for concurrent use.
type Extractor struct {
	maxFeatures int
	ngramMin    int
	ngramMax    int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxFeatures caps the vocabulary size. n <= 0 disables the cap.
func WithMaxFeatures(n int) Option {
	return func(e *Extractor) { e.maxFeatures = n }
}

// WithNgramRange sets the n-gram lengths considered.
func WithNgramRange(lo, hi int) Option {
	return func(e *Extractor) {
		e.ngramMin = lo
		e.ngramMax = hi
	}
}

// New returns an extractor over unigrams and bigrams capped at
// DefaultMaxFeatures terms.
func New(opts ...Option) *Extractor {
	e := &Extractor{maxFeatures: DefaultMaxFeatures, ngramMin: 1, ngramMax: 2}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scores returns every vocabulary term of documents ranked by descending
// mean weight. Equal weights keep alphabetical order. It returns an empty
// slice for no documents or a degenerate vocabulary.
func (e *Extractor) Scores(documents []string) []Score {
	if len(documents) == 0 {
		return []Score{}
	}
	v := NewVectorizer(e.maxFeatures, e.ngramMin, e.ngramMax)
	rows, err := v.FitTransform(documents)
	if errors.Is(err, domain.ErrEmptyVocabulary) {
		return []Score{}
	}
	vocab := v.Terms()
	sums := make([]float64, v.Dimension())
	for _, row := range rows {
		for idx, w := range row {
			sums[idx] += w
		}
	}
	n := float64(len(documents))
	scores := make([]Score, len(sums))
	for i, term := range vocab {
		scores[i] = Score{Term: term, Weight: sums[i] / n}
	}
	slices.SortStableFunc(scores, func(a, b Score) int { return cmp.Compare(b.Weight, a.Weight) })
	return scores
}

// TopTerms returns at most n terms of documents ranked by mean weight.
func (e *Extractor) TopTerms(documents []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	scores := e.Scores(documents)
	if len(scores) > n {
		scores = scores[:n]
	}
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = s.Term
	}
	return out
}

var defaultExtractor = New()

// ExtractTopTerms returns the top termCount terms of documents using the
// default extractor.
func ExtractTopTerms(documents []string, termCount int) []string {
	return defaultExtractor.TopTerms(documents, termCount)
}

var _ domain.TermExtractor = (*Extractor)(nil)
