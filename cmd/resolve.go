package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var (
	resolveAccept string
	resolveAll    bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [id]",
	Short: "Resolve a pending conflict",
	Long: `Resolve a pending conflict by id, or every pending conflict with --all.
--accept picks the resolution: merge combines both sides, yours keeps the
local version, theirs takes the server version.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"resolution":"%s"}`, resolveAccept)

		if resolveAll {
			resp, err := http.Post(
				daemonURL("/conflicts/resolve-all"),
				"application/json",
				strings.NewReader(body))
			if err != nil {
				return fmt.Errorf("daemon not running: %w", err)
			}

			defer func(Body io.ReadCloser) {
				_ = Body.Close()
			}(resp.Body)

			var result struct {
				Resolved   int    `json:"resolved"`
				Cancelled  int    `json:"cancelled"`
				Failed     int    `json:"failed"`
				Ineligible int    `json:"ineligible"`
				Error      string `json:"error"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}

			fmt.Printf("resolved: %d  cancelled: %d  failed: %d  ineligible: %d\n",
				result.Resolved, result.Cancelled, result.Failed, result.Ineligible)
			if result.Error != "" {
				fmt.Println(result.Error)
			}
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("conflict id required (or --all)")
		}

		resp, err := http.Post(
			daemonURL("/conflicts/"+args[0]+"/resolve"),
			"application/json",
			strings.NewReader(body))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Status string `json:"status"`
			Error  string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}

		if result.Error != "" {
			return fmt.Errorf("%s", result.Error)
		}

		fmt.Printf("conflict %s: %s\n", args[0], result.Status)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveAccept, "accept", "merge", "resolution to apply: merge, yours or theirs")
	resolveCmd.Flags().BoolVar(&resolveAll, "all", false, "resolve every pending conflict")
	rootCmd.AddCommand(resolveCmd)
}
