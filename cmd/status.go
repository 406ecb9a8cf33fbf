package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var status struct {
			Session   string    `json:"session"`
			StartedAt time.Time `json:"started_at"`
			Pending   int       `json:"pending"`
			Resolved  int64     `json:"resolved"`
			Failed    int64     `json:"failed"`
			Skipped   int64     `json:"skipped"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		fmt.Printf("session:  %s (up %s)\n", status.Session, time.Since(status.StartedAt).Round(time.Second))
		fmt.Printf("pending:  %d\n", status.Pending)
		fmt.Printf("resolved: %d\n", status.Resolved)
		fmt.Printf("failed:   %d\n", status.Failed)
		fmt.Printf("skipped:  %d\n", status.Skipped)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
