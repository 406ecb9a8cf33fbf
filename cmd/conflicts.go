package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"resolvo/internal/model"
	"resolvo/internal/resolve"

	"github.com/spf13/cobra"
)

var conflictsRefresh bool

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "List pending conflicts",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := daemonURL("/conflicts")
		if conflictsRefresh {
			url += "?refresh=1"
		}

		resp, err := http.Get(url)
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Session   string           `json:"session"`
			Conflicts []model.Conflict `json:"conflicts"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode conflicts response: %w", err)
		}

		if len(result.Conflicts) == 0 {
			fmt.Println("no pending conflicts")
			return nil
		}

		fmt.Printf("%-6s %-8s %-7s %-20s %-20s %-5s %s\n",
			"ID", "TYPE", "ITEM", "YOURS", "THEIRS", "MERGE", "PATH")

		for i := range result.Conflicts {
			c := &result.Conflicts[i]
			mergeable := "no"
			if resolve.CanMerge(c) {
				mergeable = "yes"
			}

			fmt.Printf("%-6d %-8s %-7s %-20s %-20s %-5s %s\n",
				c.ID, c.Type, c.ItemType,
				c.YourChange, c.BaseChange,
				mergeable, c.LocalPath())
		}

		return nil
	},
}

func init() {
	conflictsCmd.Flags().BoolVar(&conflictsRefresh, "refresh", false, "re-query the servers before listing")
	rootCmd.AddCommand(conflictsCmd)
}
