package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

var skipCmd = &cobra.Command{
	Use:   "skip [id]",
	Short: "Skip a conflict, leaving it pending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Post(daemonURL("/conflicts/"+args[0]+"/skip"), "application/json", nil)
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("no such pending conflict: %s", args[0])
		}

		fmt.Printf("conflict %s skipped\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skipCmd)
}
