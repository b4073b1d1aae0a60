package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ColumnsConfig names the source columns of the document table.
type ColumnsConfig struct {
	Cluster  string `yaml:"cluster"`
	Doc      string `yaml:"doc"`
	Verified string `yaml:"verified"`
}

// InputConfig locates the document table.
type InputConfig struct {
	Path    string        `yaml:"path"`
	Format  string        `yaml:"format"`
	Sheet   string        `yaml:"sheet,omitempty"`
	Columns ColumnsConfig `yaml:"columns"`
}

// LabelsConfig supplies cluster display labels from a file, inline, or
// both (inline entries win).
type LabelsConfig struct {
	Path string            `yaml:"path"`
	Map  map[string]string `yaml:"map,omitempty"`
}

// ExtractorConfig configures TF-IDF keyword extraction.
type ExtractorConfig struct {
	TermCount   int `yaml:"term_count"`
	MaxFeatures int `yaml:"max_features"`
	NgramMin    int `yaml:"ngram_min"`
	NgramMax    int `yaml:"ngram_max"`
}

// SummaryConfig configures per-cluster aggregation.
type SummaryConfig struct {
	ExampleCount int    `yaml:"example_count"`
	Workers      int    `yaml:"workers"`
	NullVerified string `yaml:"null_verified"`
}

// OutputConfig controls where and how the summary is written.
type OutputConfig struct {
	Path     string `yaml:"path"`
	Format   string `yaml:"format"`
	Print    string `yaml:"print"`
	MaxWidth int    `yaml:"max_width"`
}

// LoggerConfig configures logrus.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Input     InputConfig     `yaml:"input"`
	Labels    LabelsConfig    `yaml:"labels"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Summary   SummaryConfig   `yaml:"summary"`
	Output    OutputConfig    `yaml:"output"`
	Logger    LoggerConfig    `yaml:"logger"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Keys absent from the file keep their default values; an explicit zero
// term_count or example_count is kept, matching the --terms and --examples flags.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./clustersum.yaml first, then ~/.config/clustersum/config.yaml.
// If neither exists, it writes defaults to ~/.config/clustersum/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "clustersum.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultUserConfigPath returns ~/.config/clustersum/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "clustersum", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Input: InputConfig{
			Columns: ColumnsConfig{Cluster: "cluster", Doc: "doc", Verified: "verified_purchase"},
		},
		Extractor: ExtractorConfig{TermCount: 10, MaxFeatures: 1000, NgramMin: 1, NgramMax: 2},
		Summary:   SummaryConfig{ExampleCount: 3, Workers: 1, NullVerified: "skip"},
		Output:    OutputConfig{Path: "cluster_summary.csv", Print: "none", MaxWidth: 60},
		Logger:    LoggerConfig{Level: "info", Format: "text"},
	}
	return cfg
}

// applyConfigDefaults restores defaults for values that are blank or
// meaningless at zero.
func applyConfigDefaults(cfg *AppConfig) {
	d := Default()
	if cfg.Input.Columns.Cluster == "" {
		cfg.Input.Columns.Cluster = d.Input.Columns.Cluster
	}
	if cfg.Input.Columns.Doc == "" {
		cfg.Input.Columns.Doc = d.Input.Columns.Doc
	}
	if cfg.Input.Columns.Verified == "" {
		cfg.Input.Columns.Verified = d.Input.Columns.Verified
	}
	if cfg.Extractor.MaxFeatures == 0 {
		cfg.Extractor.MaxFeatures = d.Extractor.MaxFeatures
	}
	if cfg.Extractor.NgramMin == 0 {
		cfg.Extractor.NgramMin = d.Extractor.NgramMin
	}
	if cfg.Extractor.NgramMax < cfg.Extractor.NgramMin {
		cfg.Extractor.NgramMax = cfg.Extractor.NgramMin
	}
	if cfg.Summary.Workers == 0 {
		cfg.Summary.Workers = d.Summary.Workers
	}
	if cfg.Summary.NullVerified == "" {
		cfg.Summary.NullVerified = d.Summary.NullVerified
	}
	if cfg.Output.Print == "" {
		cfg.Output.Print = d.Output.Print
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = d.Logger.Level
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = d.Logger.Format
	}
}
