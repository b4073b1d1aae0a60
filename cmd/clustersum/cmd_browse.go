package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clustersum/internal/tui"
)

var browseFlags inputFlags

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Summarize a document table and browse the clusters interactively",
	RunE:  runBrowse,
}

func init() {
	browseFlags.register(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	cfg := appCfg
	browseFlags.apply(cmd, cfg)

	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	// the terminal owns stdin while browsing
	summary, err := svc.Build(cmd.Context(), newRequest(cfg, nil))
	if err != nil {
		return err
	}

	m := tui.New(summary, cfg.Input.Path)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
