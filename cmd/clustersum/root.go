// clustersum summarizes clustered text documents: one row per cluster with
// its label, top TF-IDF terms, size, verified ratio and example documents.
//
// Usage:
//
//	clustersum summarize --input docs.csv [--labels labels.yaml] [--output cluster_summary.csv]
//	clustersum browse --input docs.csv
//	clustersum terms [--n 10] [file...]
//	clustersum config init [path]
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"clustersum/internal/config"
	"clustersum/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

const envLogLevel = "CLUSTERSUM_LOG_LEVEL"

var rootFlags struct {
	config    string
	logLevel  string
	logFormat string
}

// appCfg is loaded once per invocation by the root pre-run hook.
var appCfg *config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "clustersum",
	Short: "Summarize clustered text documents",
	Long:  "clustersum builds one summary row per cluster of a labeled document table:\nlabel, top TF-IDF terms, document count, verified ratio and examples.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.config, "config", "", "Path to YAML config file (uses ./clustersum.yaml or ~/.config/clustersum/config.yaml if not provided)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.Version = version
}

func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	var err error
	switch {
	case rootFlags.config != "":
		appCfg, err = config.Load(rootFlags.config)
	case cmd == configInitCmd:
		appCfg = config.Default()
	default:
		appCfg, _, err = config.LoadDefault()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := appCfg.Logger.Level
	if v := os.Getenv(envLogLevel); v != "" {
		level = v
	}
	if rootFlags.logLevel != "" {
		level = rootFlags.logLevel
	}
	format := appCfg.Logger.Format
	if rootFlags.logFormat != "" {
		format = rootFlags.logFormat
	}
	logging.Init(logging.ParseLevel(level), format, cmd.ErrOrStderr())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
