package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrubline/scrubline/cli/internal/config"
)

var (
	cfgFile   string
	apiURL    string
	workerURL string
)

var rootCmd = &cobra.Command{
	Use:   "scrubctl",
	Short: "Scrubline CLI",
	Long: `scrubctl is the command-line interface for the Scrubline pipeline.

Submit log records for asynchronous redaction, check service health,
and generate synthetic ingest load from your terminal.`,
	Version: "0.1.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.scrubctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "base URL of the ingest API")
	rootCmd.PersistentFlags().StringVar(&workerURL, "worker", "", "base URL of the worker")
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = config.Default()
	}

	// Flags win over config file values
	if apiURL == "" {
		apiURL = cfg.APIURL
	}
	if workerURL == "" {
		workerURL = cfg.WorkerURL
	}
}
