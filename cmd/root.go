package cmd

import (
	"github.com/spf13/cobra"

	"github.com/caseforge/caseforge/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	log       *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "caseforge",
	Short: "Process event log fixture generator",
	Long: `caseforge fabricates event logs of simulated process instances for
testing process-mining and log-analysis tools.

Generated cases carry deliberately injected inefficiencies (self-loops,
ping-pongs, long time gaps, error outcomes, truncated cases). The analyze
command reads a log back and reports what it contains.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./caseforge.yaml or ~/.caseforge/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")
}

func initLogging() {
	log = logging.New(logging.ParseLevel(logLevel), logFormat)
	logging.SetDefault(log)
}
