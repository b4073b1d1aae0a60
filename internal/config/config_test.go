package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clustersum.yaml")
	data := `
input:
  path: reviews.xlsx
  columns:
    doc: review_text
labels:
  map:
    0: Positive
    "1": Negative
extractor:
  term_count: 5
summary:
  workers: 4
  null_verified: "false"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "reviews.xlsx", cfg.Input.Path)
	assert.Equal(t, "review_text", cfg.Input.Columns.Doc)
	assert.Equal(t, "cluster", cfg.Input.Columns.Cluster)
	assert.Equal(t, map[string]string{"0": "Positive", "1": "Negative"}, cfg.Labels.Map)
	assert.Equal(t, 5, cfg.Extractor.TermCount)
	assert.Equal(t, 1000, cfg.Extractor.MaxFeatures)
	assert.Equal(t, 2, cfg.Extractor.NgramMax)
	assert.Equal(t, 3, cfg.Summary.ExampleCount)
	assert.Equal(t, 4, cfg.Summary.Workers)
	assert.Equal(t, "false", cfg.Summary.NullVerified)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadKeepsExplicitZeroCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clustersum.yaml")
	data := `
extractor:
  term_count: 0
  max_features: 0
summary:
  example_count: 0
input:
  columns:
    cluster: ""
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Extractor.TermCount)
	assert.Equal(t, 0, cfg.Summary.ExampleCount)
	// zero cap and blank column names still fall back
	assert.Equal(t, 1000, cfg.Extractor.MaxFeatures)
	assert.Equal(t, "cluster", cfg.Input.Columns.Cluster)
	assert.Equal(t, 1, cfg.Summary.Workers)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Output.Path = "out.xlsx"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
