package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"clustersum/internal/format"
)

var summarizeFlags struct {
	inputFlags
	output       string
	outputFormat string
	print        string
	maxWidth     int
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a clustered document table and save the result",
	RunE:  runSummarize,
}

func init() {
	summarizeFlags.register(summarizeCmd)
	f := summarizeCmd.Flags()
	f.StringVarP(&summarizeFlags.output, "output", "o", "", "Summary output path (.csv or .xlsx)")
	f.StringVar(&summarizeFlags.outputFormat, "output-format", "", "Output format: csv or xlsx (default: from extension)")
	f.StringVar(&summarizeFlags.print, "print", "", "Also print the summary: ascii, markdown or none")
	f.IntVar(&summarizeFlags.maxWidth, "max-width", 0, "Wrap printed terms and examples at this width (0: config value)")
}

func runSummarize(cmd *cobra.Command, _ []string) error {
	cfg := appCfg
	summarizeFlags.apply(cmd, cfg)
	f := cmd.Flags()
	if f.Changed("output") {
		cfg.Output.Path = summarizeFlags.output
	}
	if f.Changed("output-format") {
		cfg.Output.Format = summarizeFlags.outputFormat
	}
	if f.Changed("print") {
		cfg.Output.Print = summarizeFlags.print
	}
	if f.Changed("max-width") {
		cfg.Output.MaxWidth = summarizeFlags.maxWidth
	}

	var mode format.Mode
	printTable := !strings.EqualFold(cfg.Output.Print, "none")
	if printTable {
		var err error
		if mode, err = format.ParseMode(cfg.Output.Print); err != nil {
			return err
		}
	}

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	res, err := svc.Run(cmd.Context(), newRequest(cfg, cmd.InOrStdin()))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if printTable {
		fmt.Fprintln(out, format.RenderSummary(res.Summary, mode, cfg.Output.MaxWidth))
	}
	if res.OutputPath != "" {
		fmt.Fprintf(out, "Summary saved to %s\n", res.OutputPath)
	}
	return nil
}
