package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"resolvo/internal/model"
)

var historyCount int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent resolution history",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL(fmt.Sprintf("/history?n=%d", historyCount)))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var records []model.ResolutionRecord
		if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
			return fmt.Errorf("failed to decode history response: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("no resolutions recorded yet")
			return nil
		}

		for _, r := range records {
			glyph := "-"
			switch r.Outcome {
			case model.OutcomeResolved:
				glyph = "✓"
			case model.OutcomeFailed:
				glyph = "✗"
			}

			line := fmt.Sprintf("%s %s  #%d %s %s", glyph, r.ResolvedAt.Format("2006-01-02 15:04:05"), r.ConflictID, r.Resolution, r.Path)
			if r.ErrMsg != "" {
				line += " (" + r.ErrMsg + ")"
			}
			fmt.Println(line)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyCount, "count", "n", 20, "number of records to show")
	rootCmd.AddCommand(historyCmd)
}
