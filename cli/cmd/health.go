package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrubline/scrubline/cli/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health",
	RunE: func(cmd *cobra.Command, args []string) error {
		var firstErr error
		for name, url := range map[string]string{"api": apiURL, "worker": workerURL} {
			body, err := client.Health(url)
			if err != nil {
				fmt.Printf("%-8s %s  UNREACHABLE (%v)\n", name, url, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			fmt.Printf("%-8s %s  %s\n", name, url, body["status"])
		}
		return firstErr
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
