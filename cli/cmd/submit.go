package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrubline/scrubline/cli/internal/client"
)

var (
	submitTenant string
	submitLogID  string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit log records for processing",
}

var submitJSONCmd = &cobra.Command{
	Use:   "json <text>",
	Short: "Submit a fully-identified JSON record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if submitTenant == "" {
			return fmt.Errorf("--tenant is required")
		}
		if submitLogID == "" {
			return fmt.Errorf("--log-id is required")
		}

		c := client.NewIngestClient(apiURL)
		resp, err := c.SubmitJSON(submitTenant, submitLogID, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Accepted: log_id=%s\n", resp.LogID)
		return nil
	},
}

var submitTextCmd = &cobra.Command{
	Use:   "text <line>",
	Short: "Submit a raw log line (the API assigns a log_id)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if submitTenant == "" {
			return fmt.Errorf("--tenant is required")
		}

		c := client.NewIngestClient(apiURL)
		resp, err := c.SubmitText(submitTenant, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Accepted: log_id=%s\n", resp.LogID)
		return nil
	},
}

func init() {
	submitCmd.PersistentFlags().StringVar(&submitTenant, "tenant", "", "tenant identifier")
	submitJSONCmd.Flags().StringVar(&submitLogID, "log-id", "", "record identifier")

	submitCmd.AddCommand(submitJSONCmd)
	submitCmd.AddCommand(submitTextCmd)
	rootCmd.AddCommand(submitCmd)
}
