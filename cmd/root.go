package cmd

import (
	"fmt"
	"os"
	"resolvo/internal/config"
	"resolvo/internal/db"
	"resolvo/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "resolvo",
	Short: "Resolve workspace conflicts against a version-control server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger.Init(debug)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		// Only the daemon touches the database; client commands go through
		// its HTTP API.
		if cmd.Name() == "serve" {
			if err := db.Init(cfg.DBPath); err != nil {
				return err
			}
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func daemonURL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", cfg.DaemonPort, path)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
}
