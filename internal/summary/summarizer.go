// Package summary builds one descriptive record per cluster of a labeled
// document table.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"clustersum/internal/domain"
	"clustersum/internal/logging"
	"clustersum/internal/terms"
)

const (
	DefaultTermCount    = terms.DefaultTermCount
	DefaultExampleCount = 3

	TermDelimiter    = ", "
	ExampleDelimiter = "\n---\n"
)

// NullPolicy decides how rows with a null verified flag enter the ratio.
type NullPolicy string

const (
	// NullSkip leaves null rows out of the mean.
	NullSkip NullPolicy = "skip"
	// NullFalse counts null rows as unverified.
	NullFalse NullPolicy = "false"
)

// ParseNullPolicy accepts "skip", "false" or the empty string (skip).
func ParseNullPolicy(s string) (NullPolicy, error) {
	switch NullPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", NullSkip:
		return NullSkip, nil
	case NullFalse:
		return NullFalse, nil
	default:
		return "", fmt.Errorf("unknown null verified policy %q (want skip or false)", s)
	}
}

// Summarizer implements domain.ClusterSummarizer.
type Summarizer struct {
	extractor    domain.TermExtractor
	termCount    int
	exampleCount int
	workers      int
	nullPolicy   NullPolicy
	clusters     []domain.ClusterID
	log          *logrus.Entry
}

// Option configures a Summarizer.
type Option func(*Summarizer)

func WithTermCount(n int) Option    { return func(s *Summarizer) { s.termCount = n } }
func WithExampleCount(n int) Option { return func(s *Summarizer) { s.exampleCount = n } }

// WithWorkers bounds the number of clusters processed at once. Values
// below one mean one.
func WithWorkers(n int) Option { return func(s *Summarizer) { s.workers = n } }

func WithNullPolicy(p NullPolicy) Option { return func(s *Summarizer) { s.nullPolicy = p } }

// WithClusters restricts the output to the given identifiers instead of
// those found in the table. Identifiers without rows are skipped.
func WithClusters(ids ...domain.ClusterID) Option {
	return func(s *Summarizer) { s.clusters = domain.SortClusterIDs(ids) }
}

func WithLogger(l *logrus.Entry) Option { return func(s *Summarizer) { s.log = l } }

// New creates a summarizer. A nil extractor selects terms.New().
func New(extractor domain.TermExtractor, opts ...Option) *Summarizer {
	if extractor == nil {
		extractor = terms.New()
	}
	s := &Summarizer{
		extractor:    extractor,
		termCount:    DefaultTermCount,
		exampleCount: DefaultExampleCount,
		workers:      1,
		nullPolicy:   NullSkip,
		log:          logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// SummarizeClusters summarizes table with the default extractor on a
// single worker.
func SummarizeClusters(table domain.Table, labels domain.LabelMap, termCount, exampleCount int) (domain.SummaryTable, error) {
	s := New(nil, WithTermCount(termCount), WithExampleCount(exampleCount))
	return s.Summarize(context.Background(), table, labels)
}

// Summarize returns one record per cluster in ascending cluster order. It
// fails early when the table lacks the cluster or doc column.
func (s *Summarizer) Summarize(ctx context.Context, table domain.Table, labels domain.LabelMap) (domain.SummaryTable, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	ids := s.clusters
	if ids == nil {
		ids = table.ClusterIDs()
	}
	groups := table.Partition()
	hasVerified := table.HasVerified()

	// each task owns one slot, so output order never depends on scheduling
	slots := make([]*domain.SummaryRecord, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range ids {
		docs := groups[id]
		if len(docs) == 0 {
			s.log.WithField("cluster", id.String()).Debug("skipping empty cluster")
			continue
		}
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec := s.summarizeCluster(id, docs, hasVerified, labels)
			slots[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(domain.SummaryTable, 0, len(ids))
	for _, rec := range slots {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	s.log.WithFields(logrus.Fields{"clusters": len(out), "rows": table.Len()}).Info("clusters summarized")
	return out, nil
}

func (s *Summarizer) summarizeCluster(id domain.ClusterID, docs []domain.Document, hasVerified bool, labels domain.LabelMap) domain.SummaryRecord {
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	examples := texts
	if s.exampleCount < len(examples) {
		examples = examples[:max(s.exampleCount, 0)]
	}
	rec := domain.SummaryRecord{
		ClusterID:     id,
		Label:         labels.Resolve(id),
		TopTerms:      strings.Join(s.extractor.TopTerms(texts, s.termCount), TermDelimiter),
		NumReviews:    len(docs),
		VerifiedRatio: s.verifiedRatio(docs, hasVerified),
		Examples:      strings.Join(examples, ExampleDelimiter),
	}
	s.log.WithFields(logrus.Fields{
		"cluster": id.String(),
		"docs":    rec.NumReviews,
		"ratio":   rec.VerifiedRatio.String(),
	}).Debug("cluster summarized")
	return rec
}

func (s *Summarizer) verifiedRatio(docs []domain.Document, hasColumn bool) domain.Ratio {
	if !hasColumn {
		return domain.NARatio()
	}
	var verified, counted int
	for _, d := range docs {
		if d.Verified == nil {
			if s.nullPolicy == NullFalse {
				counted++
			}
			continue
		}
		counted++
		if *d.Verified {
			verified++
		}
	}
	if counted == 0 {
		return domain.NARatio()
	}
	return domain.RatioOf(float64(verified) / float64(counted))
}

var _ domain.ClusterSummarizer = (*Summarizer)(nil)
