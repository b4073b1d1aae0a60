package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var termsFlags struct {
	n      int
	scores bool
}

var termsCmd = &cobra.Command{
	Use:   "terms [file...]",
	Short: "Print the top TF-IDF terms of documents, one document per line",
	Long:  "terms reads documents one per non-empty line from the given files,\nor from stdin when none are given, and prints their top terms.",
	RunE:  runTerms,
}

func init() {
	f := termsCmd.Flags()
	f.IntVarP(&termsFlags.n, "n", "n", 0, "Number of terms (0: config term_count)")
	f.BoolVar(&termsFlags.scores, "scores", false, "Print the mean TF-IDF weight next to each term")
}

func runTerms(cmd *cobra.Command, args []string) error {
	var docs []string
	if len(args) == 0 {
		lines, err := readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
		docs = lines
	}
	for _, path := range args {
		fh, err := os.Open(path)
		if err != nil {
			return err
		}
		lines, err := readLines(fh)
		fh.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, lines...)
	}

	n := appCfg.Extractor.TermCount
	if termsFlags.n > 0 {
		n = termsFlags.n
	}
	out := cmd.OutOrStdout()
	ext := newExtractor(appCfg)
	if !termsFlags.scores {
		for _, t := range ext.TopTerms(docs, n) {
			fmt.Fprintln(out, t)
		}
		return nil
	}
	scores := ext.Scores(docs)
	if n < len(scores) {
		scores = scores[:n]
	}
	for _, s := range scores {
		fmt.Fprintf(out, "%s\t%.4f\n", s.Term, s.Weight)
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
