package cmd

import (
	"fmt"
	"os"
	"resolvo/internal/autostart"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the daemon to start on login",
	RunE: func(cmd *cobra.Command, args []string) error {
		execPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get executable path: %w", err)
		}

		as := autostart.New()
		if err := as.Install(execPath); err != nil {
			return err
		}

		fmt.Println("resolvo daemon registered for autostart")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
