package terms

import (
	"cmp"
	"math"
	"slices"
	"sort"

	"clustersum/internal/domain"
)

// DefaultMaxFeatures caps the vocabulary of a fitted model.
const DefaultMaxFeatures = 1000

// Vectorizer is a TF-IDF model. It keeps the maxFeatures most frequent
// terms of the corpus it was fitted on and weighs raw term counts by a
// smoothed IDF. Rows are L2-normalized.
type Vectorizer struct {
	vocabulary  map[string]int
	terms       []string
	idf         []float64
	maxFeatures int
	analyzer    *analyzer
	fitted      bool
}

// NewVectorizer creates an unfitted vectorizer over n-grams in
// [ngramMin, ngramMax]. maxFeatures <= 0 disables the vocabulary cap.
func NewVectorizer(maxFeatures, ngramMin, ngramMax int) *Vectorizer {
	return &Vectorizer{
		vocabulary:  make(map[string]int),
		maxFeatures: maxFeatures,
		analyzer:    newAnalyzer(ngramMin, ngramMax),
	}
}

// Fit builds the vocabulary and IDF values from corpus.
func (v *Vectorizer) Fit(corpus []string) error {
	_, err := v.fit(corpus)
	return err
}

// FitTransform fits the model and returns the weighted rows of corpus.
func (v *Vectorizer) FitTransform(corpus []string) ([]map[int]float64, error) {
	counts, err := v.fit(corpus)
	if err != nil {
		return nil, err
	}
	rows := make([]map[int]float64, len(counts))
	for i, c := range counts {
		rows[i] = v.weigh(c)
	}
	return rows, nil
}

// Transform returns one sparse row per document, keyed by vocabulary index.
// Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(corpus []string) ([]map[int]float64, error) {
	if !v.fitted {
		return nil, domain.ErrNotFitted
	}
	rows := make([]map[int]float64, len(corpus))
	for i, text := range corpus {
		rows[i] = v.weigh(v.count(text))
	}
	return rows, nil
}

// Terms returns the vocabulary in index order (alphabetical).
func (v *Vectorizer) Terms() []string { return slices.Clone(v.terms) }

// Dimension returns the vocabulary size.
func (v *Vectorizer) Dimension() int { return len(v.terms) }

func (v *Vectorizer) count(text string) map[string]int {
	tf := make(map[string]int)
	for _, term := range v.analyzer.analyze(text) {
		tf[term]++
	}
	return tf
}

func (v *Vectorizer) fit(corpus []string) ([]map[string]int, error) {
	if len(corpus) == 0 {
		return nil, domain.ErrEmptyVocabulary
	}
	counts := make([]map[string]int, len(corpus))
	df := make(map[string]int)
	freq := make(map[string]int)
	for i, text := range corpus {
		counts[i] = v.count(text)
		for term, c := range counts[i] {
			df[term]++
			freq[term] += c
		}
	}
	if len(df) == 0 {
		return nil, domain.ErrEmptyVocabulary
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		slices.SortStableFunc(terms, func(a, b string) int { return cmp.Compare(freq[b], freq[a]) })
		terms = terms[:v.maxFeatures]
		sort.Strings(terms)
	}
	v.terms = terms
	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.fitted = true
	return counts, nil
}

func (v *Vectorizer) weigh(tf map[string]int) map[int]float64 {
	row := make(map[int]float64, len(tf))
	idxs := make([]int, 0, len(tf))
	for term, c := range tf {
		idx, ok := v.vocabulary[term]
		if !ok {
			continue
		}
		row[idx] = float64(c) * v.idf[idx]
		idxs = append(idxs, idx)
	}
	// sum in index order so repeated fits give bit-identical weights
	sort.Ints(idxs)
	norm := 0.0
	for _, idx := range idxs {
		norm += row[idx] * row[idx]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for idx := range row {
			row[idx] /= norm
		}
	}
	return row
}
