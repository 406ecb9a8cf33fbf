package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show files touched during this session",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/ledger"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Session string              `json:"session"`
			Groups  map[string][]string `json:"groups"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode ledger response: %w", err)
		}

		if len(result.Groups) == 0 {
			fmt.Println("no files touched yet")
			return nil
		}

		groups := make([]string, 0, len(result.Groups))
		for g := range result.Groups {
			groups = append(groups, g)
		}
		sort.Strings(groups)

		for _, g := range groups {
			fmt.Println(g)
			for _, path := range result.Groups[g] {
				fmt.Printf("  %s\n", path)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
}
