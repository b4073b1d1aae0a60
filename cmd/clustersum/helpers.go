package main

import (
	"io"

	"github.com/spf13/cobra"

	"clustersum/internal/config"
	"clustersum/internal/logging"
	"clustersum/internal/service"
	"clustersum/internal/summary"
	"clustersum/internal/tableio"
	"clustersum/internal/terms"
)

// inputFlags are shared by summarize and browse. Set flags override the
// matching config values.
type inputFlags struct {
	input        string
	format       string
	sheet        string
	labels       string
	clusterCol   string
	docCol       string
	verifiedCol  string
	termCount    int
	exampleCount int
	workers      int
	nullVerified string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "Document table (.csv or .xlsx, - for stdin)")
	fs.StringVar(&f.format, "input-format", "", "Input format: csv or xlsx (default: from extension)")
	fs.StringVar(&f.sheet, "sheet", "", "XLSX sheet to read (default: first sheet)")
	fs.StringVarP(&f.labels, "labels", "l", "", "YAML file mapping cluster ID to label")
	fs.StringVar(&f.clusterCol, "cluster-column", "", "Column holding the cluster ID")
	fs.StringVar(&f.docCol, "doc-column", "", "Column holding the document text")
	fs.StringVar(&f.verifiedCol, "verified-column", "", "Column holding the verified flag")
	fs.IntVar(&f.termCount, "terms", 0, "Top terms per cluster")
	fs.IntVar(&f.exampleCount, "examples", 0, "Example documents per cluster")
	fs.IntVar(&f.workers, "workers", 0, "Clusters summarized concurrently")
	fs.StringVar(&f.nullVerified, "null-verified", "", "Null verified cells: skip or false")
}

// apply copies changed flags into cfg.
func (f *inputFlags) apply(cmd *cobra.Command, cfg *config.AppConfig) {
	fs := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("input", &cfg.Input.Path, f.input)
	set("input-format", &cfg.Input.Format, f.format)
	set("sheet", &cfg.Input.Sheet, f.sheet)
	set("labels", &cfg.Labels.Path, f.labels)
	set("cluster-column", &cfg.Input.Columns.Cluster, f.clusterCol)
	set("doc-column", &cfg.Input.Columns.Doc, f.docCol)
	set("verified-column", &cfg.Input.Columns.Verified, f.verifiedCol)
	set("null-verified", &cfg.Summary.NullVerified, f.nullVerified)
	if fs.Changed("terms") {
		cfg.Extractor.TermCount = f.termCount
	}
	if fs.Changed("examples") {
		cfg.Summary.ExampleCount = f.exampleCount
	}
	if fs.Changed("workers") {
		cfg.Summary.Workers = f.workers
	}
}

func newExtractor(cfg *config.AppConfig) *terms.Extractor {
	return terms.New(
		terms.WithMaxFeatures(cfg.Extractor.MaxFeatures),
		terms.WithNgramRange(cfg.Extractor.NgramMin, cfg.Extractor.NgramMax),
	)
}

func newService(cfg *config.AppConfig) (*service.SummaryService, error) {
	policy, err := summary.ParseNullPolicy(cfg.Summary.NullVerified)
	if err != nil {
		return nil, err
	}
	s := summary.New(newExtractor(cfg),
		summary.WithTermCount(cfg.Extractor.TermCount),
		summary.WithExampleCount(cfg.Summary.ExampleCount),
		summary.WithWorkers(cfg.Summary.Workers),
		summary.WithNullPolicy(policy),
		summary.WithLogger(logging.New("summary")),
	)
	return service.NewSummaryService(s, logging.New("service")), nil
}

// newRequest builds a service request; stdin is read when the input path
// is tableio.StdinPath.
func newRequest(cfg *config.AppConfig, stdin io.Reader) service.Request {
	return service.Request{
		Input:       stdin,
		InputPath:   cfg.Input.Path,
		InputFormat: cfg.Input.Format,
		Sheet:       cfg.Input.Sheet,
		Columns: tableio.Columns{
			Cluster:  cfg.Input.Columns.Cluster,
			Doc:      cfg.Input.Columns.Doc,
			Verified: cfg.Input.Columns.Verified,
		},
		LabelsPath:   cfg.Labels.Path,
		Labels:       cfg.Labels.Map,
		OutputPath:   cfg.Output.Path,
		OutputFormat: cfg.Output.Format,
	}
}
