package service

import (
	"context"
	"fmt"
	"io"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clustersum/internal/domain"
	"clustersum/internal/logging"
	"clustersum/internal/tableio"
)

// Request describes one summarization run.
type Request struct {
	InputPath   string
	InputFormat string
	Sheet       string
	Columns     tableio.Columns
	// Input is read instead of a file when InputPath is tableio.StdinPath.
	Input io.Reader

	// LabelsPath is an optional YAML label file. Labels entries override it.
	LabelsPath string
	Labels     map[string]string

	// OutputPath is left empty to skip writing.
	OutputPath   string
	OutputFormat string
}

// Result is what Run produced.
type Result struct {
	RunID      string
	Summary    domain.SummaryTable
	OutputPath string
	Elapsed    time.Duration
}

type SummaryService struct {
	summarizer domain.ClusterSummarizer
	log        *logrus.Entry
}

func NewSummaryService(summarizer domain.ClusterSummarizer, log *logrus.Entry) *SummaryService {
	if log == nil {
		log = logging.Discard()
	}
	return &SummaryService{summarizer: summarizer, log: log}
}

// Labels merges the label file and inline labels of req.
func (s *SummaryService) Labels(req Request) (domain.LabelMap, error) {
	labels := domain.LabelMap{}
	if req.LabelsPath != "" {
		fromFile, err := tableio.LoadLabels(req.LabelsPath)
		if err != nil {
			return nil, err
		}
		maps.Copy(labels, fromFile)
	}
	maps.Copy(labels, domain.LabelsFromStrings(req.Labels))
	return labels, nil
}

// Build loads the input table and summarizes it without writing anything.
func (s *SummaryService) Build(ctx context.Context, req Request) (domain.SummaryTable, error) {
	if req.InputPath == "" {
		return nil, fmt.Errorf("no input path given")
	}
	table, err := s.load(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", req.InputPath, err)
	}
	labels, err := s.Labels(req)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"input":    req.InputPath,
		"rows":     table.Len(),
		"labels":   len(labels),
		"verified": table.HasVerified(),
		"columns":  table.Columns(),
	}).Debug("table loaded")
	return s.summarizer.Summarize(ctx, table, labels)
}

func (s *SummaryService) load(req Request) (domain.Table, error) {
	if req.InputPath != tableio.StdinPath {
		return tableio.Load(req.InputPath, req.InputFormat, req.Sheet, req.Columns)
	}
	if req.Input == nil {
		return domain.Table{}, fmt.Errorf("no input stream given")
	}
	return tableio.Read(req.Input, req.InputFormat, req.Sheet, req.Columns)
}

// Export writes a summary table, detecting the format from path when
// format is empty.
func (s *SummaryService) Export(path, format string, summary domain.SummaryTable) error {
	if err := tableio.Save(path, format, summary); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Run builds the summary and, when req.OutputPath is set, exports it.
func (s *SummaryService) Run(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.NewString()}
	log := s.log.WithField("run_id", res.RunID)

	summary, err := s.Build(ctx, req)
	if err != nil {
		log.WithError(err).Error("summarize failed")
		return res, err
	}
	res.Summary = summary

	if req.OutputPath != "" {
		if err := s.Export(req.OutputPath, req.OutputFormat, summary); err != nil {
			log.WithError(err).Error("export failed")
			return res, err
		}
		res.OutputPath = req.OutputPath
	}
	res.Elapsed = time.Since(start)
	log.WithFields(logrus.Fields{
		"clusters": len(summary),
		"output":   res.OutputPath,
		"elapsed":  res.Elapsed.String(),
	}).Info("run complete")
	return res, nil
}
