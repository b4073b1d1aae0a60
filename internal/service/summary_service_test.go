package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clustersum/internal/domain"
	"clustersum/internal/summary"
	"clustersum/internal/tableio"
)

const docsCSV = `cluster,doc,verified_purchase
0,good product,True
1,excellent,True
0,very good,False
1,excellent service,True
0,bad item,True
`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestRunWritesSummary(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "docs.csv", docsCSV)
	labels := writeFile(t, dir, "labels.yaml", "0: Positive\n1: Negative\n")
	out := filepath.Join(dir, "cluster_summary.csv")

	svc := NewSummaryService(summary.New(nil), nil)
	res, err := svc.Run(context.Background(), Request{
		InputPath:  in,
		LabelsPath: labels,
		Labels:     map[string]string{"1": "Praise"},
		OutputPath: out,
	})
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)
	assert.Equal(t, out, res.OutputPath)
	require.Len(t, res.Summary, 2)

	first := res.Summary[0]
	assert.Equal(t, domain.IntID(0), first.ClusterID)
	assert.Equal(t, "Positive", first.Label)
	assert.Equal(t, "good, good product, product, bad, bad item, item", first.TopTerms)
	assert.Equal(t, 3, first.NumReviews)
	assert.Equal(t, "0.67", first.VerifiedRatio.String())
	assert.Equal(t, "good product\n---\nvery good\n---\nbad item", first.Examples)

	second := res.Summary[1]
	assert.Equal(t, "Praise", second.Label)
	assert.Equal(t, "excellent, excellent service, service", second.TopTerms)
	assert.Equal(t, "1.0", second.VerifiedRatio.String())

	_, err = os.Stat(out)
	assert.NoError(t, err)
}

func TestBuildDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "docs.csv", "cluster,doc\n0,good product\n")

	svc := NewSummaryService(summary.New(nil), nil)
	got, err := svc.Build(context.Background(), Request{InputPath: in})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.UnknownLabel, got[0].Label)
	assert.Equal(t, domain.NotAvailable, got[0].VerifiedRatio.String())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBuildFromStream(t *testing.T) {
	svc := NewSummaryService(summary.New(nil), nil)
	got, err := svc.Build(context.Background(), Request{
		InputPath: tableio.StdinPath,
		Input:     strings.NewReader(docsCSV),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0.67", got[0].VerifiedRatio.String())

	_, err = svc.Build(context.Background(), Request{InputPath: tableio.StdinPath})
	assert.Error(t, err)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	svc := NewSummaryService(summary.New(nil), nil)

	_, err := svc.Run(context.Background(), Request{})
	assert.Error(t, err)

	in := writeFile(t, dir, "docs.csv", "cluster,text\n0,hi\n")
	_, err = svc.Run(context.Background(), Request{InputPath: in})
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	in = writeFile(t, dir, "ok.csv", docsCSV)
	_, err = svc.Run(context.Background(), Request{InputPath: in, OutputPath: filepath.Join(dir, "out.json")})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = svc.Run(context.Background(), Request{InputPath: in, LabelsPath: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestRunCustomColumnsToXLSX(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "reviews.csv", "label,text\nshipping,slow delivery\nshipping,late delivery\n")
	out := filepath.Join(dir, "summary.xlsx")

	svc := NewSummaryService(summary.New(nil), nil)
	res, err := svc.Run(context.Background(), Request{
		InputPath:  in,
		Columns:    tableio.Columns{Cluster: "label", Doc: "text"},
		OutputPath: out,
	})
	require.NoError(t, err)
	require.Len(t, res.Summary, 1)
	assert.Equal(t, domain.StringID("shipping"), res.Summary[0].ClusterID)
	assert.Equal(t, "delivery", res.Summary[0].TopTerms[:len("delivery")])
}
