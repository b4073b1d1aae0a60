// Package format renders summary tables for the terminal.
package format

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"clustersum/internal/domain"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // box-drawn terminal table
	Markdown             // GitHub-flavoured Markdown table
)

// ParseMode maps "ascii", "markdown"/"md" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ascii", "text":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return ASCII, fmt.Errorf("unknown print mode %q (want ascii or markdown)", s)
	}
}

// RenderSummary renders a summary table. maxWidth wraps the Top Terms and
// Examples columns; 0 leaves them unbounded.
func RenderSummary(t domain.SummaryTable, mode Mode, maxWidth int) string {
	w := table.NewWriter()
	if mode == ASCII {
		w.SetStyle(table.StyleLight)
	}

	header := make(table.Row, 0, 6)
	for _, h := range domain.SummaryHeader() {
		header = append(header, h)
	}
	w.AppendHeader(header)

	for _, rec := range t {
		examples := rec.Examples
		if mode == Markdown {
			// markdown cells cannot span lines
			examples = strings.ReplaceAll(examples, "\n", "<br>")
		}
		w.AppendRow(table.Row{
			rec.ClusterID.String(),
			rec.Label,
			rec.TopTerms,
			rec.NumReviews,
			rec.VerifiedRatio.String(),
			examples,
		})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, WidthMax: maxWidth},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, WidthMax: maxWidth},
	})

	switch mode {
	case Markdown:
		return w.RenderMarkdown()
	default:
		return w.Render()
	}
}
