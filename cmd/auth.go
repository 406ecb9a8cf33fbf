package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"resolvo/internal/vcs"
)

var authToken string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store an access token for the version-control server",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := authToken
		if token == "" {
			fmt.Print("Paste your personal access token: ")
			if _, err := fmt.Scan(&token); err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
		}

		path, err := cfg.TokenPath()
		if err != nil {
			return err
		}

		if err := vcs.SaveToken(path, &oauth2.Token{AccessToken: token, TokenType: "Bearer"}); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		fmt.Println("token stored, restart the daemon to use it")
		return nil
	},
}

func init() {
	authCmd.Flags().StringVar(&authToken, "token", "", "personal access token (prompts if omitted)")
	rootCmd.AddCommand(authCmd)
}
