package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrubline/scrubline/cli/internal/client"
	"github.com/scrubline/scrubline/cli/internal/loadgen"
)

var (
	loadgenTenants        []string
	loadgenRate           int
	loadgenDuration       time.Duration
	loadgenConcurrency    int
	loadgenSensitiveRatio float64
	loadgenTextRatio      float64
	loadgenSeed           int64
)

// clientSubmitter adapts IngestClient to the loadgen submitter surface.
type clientSubmitter struct {
	c *client.IngestClient
}

func (s clientSubmitter) SubmitJSON(tenantID, logID, text string) error {
	_, err := s.c.SubmitJSON(tenantID, logID, text)
	return err
}

func (s clientSubmitter) SubmitText(tenantID, text string) error {
	_, err := s.c.SubmitText(tenantID, text)
	return err
}

var loadgenCmd = &cobra.Command{
	Use:   "loadgen",
	Short: "Generate synthetic ingest load",
	Long: `loadgen submits fake log records to the ingest API at a fixed rate.

A configurable fraction of records carries the sensitive phone fragment
so the downstream redaction path gets exercised.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := loadgen.NewRunner(loadgen.Config{
			Tenants:        loadgenTenants,
			Rate:           loadgenRate,
			Duration:       loadgenDuration,
			Concurrency:    loadgenConcurrency,
			SensitiveRatio: loadgenSensitiveRatio,
			TextRatio:      loadgenTextRatio,
			Seed:           loadgenSeed,
		}, clientSubmitter{c: client.NewIngestClient(apiURL)})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Generating load: %d req/s for %s against %s\n", loadgenRate, loadgenDuration, apiURL)
		stats := runner.Run(ctx)
		fmt.Printf("Done: submitted=%d failed=%d\n", stats.Submitted, stats.Failed)

		if stats.Failed > 0 {
			return fmt.Errorf("%d submissions failed", stats.Failed)
		}
		return nil
	},
}

func init() {
	loadgenCmd.Flags().StringSliceVar(&loadgenTenants, "tenants", []string{"acme"}, "tenant identifiers to spread load across")
	loadgenCmd.Flags().IntVar(&loadgenRate, "rate", 10, "submissions per second")
	loadgenCmd.Flags().DurationVar(&loadgenDuration, "duration", 10*time.Second, "how long to run")
	loadgenCmd.Flags().IntVar(&loadgenConcurrency, "concurrency", 4, "parallel submitters")
	loadgenCmd.Flags().Float64Var(&loadgenSensitiveRatio, "sensitive-ratio", 0.3, "fraction of records carrying the sensitive token")
	loadgenCmd.Flags().Float64Var(&loadgenTextRatio, "text-ratio", 0.2, "fraction submitted as text/plain")
	loadgenCmd.Flags().Int64Var(&loadgenSeed, "seed", 0, "random seed (0 = time-based)")

	rootCmd.AddCommand(loadgenCmd)
}
