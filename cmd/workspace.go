package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Manage workspace registrations",
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/workspaces"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var result struct {
			Workspaces []struct {
				ID        uint   `json:"ID"`
				Name      string `json:"name"`
				Owner     string `json:"owner"`
				ServerURL string `json:"server_url"`
				Mappings  []struct {
					ServerPath string `json:"server_path"`
					LocalPath  string `json:"local_path"`
				} `json:"mappings"`
			} `json:"workspaces"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("failed to decode workspaces response: %w", err)
		}

		if len(result.Workspaces) == 0 {
			fmt.Println("no workspaces registered")
			return nil
		}

		fmt.Printf("%-4s %-16s %-12s %s\n", "ID", "NAME", "OWNER", "SERVER")
		for _, ws := range result.Workspaces {
			fmt.Printf("%-4d %-16s %-12s %s\n", ws.ID, ws.Name, ws.Owner, ws.ServerURL)
			for _, m := range ws.Mappings {
				fmt.Printf("     %s -> %s\n", m.ServerPath, m.LocalPath)
			}
		}

		return nil
	},
}

var (
	workspaceOwner string
	workspaceMaps  []string
)

var workspaceAddCmd = &cobra.Command{
	Use:   "add [name] [server-url]",
	Short: "Register a workspace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		type mapping struct {
			ServerPath string `json:"server_path"`
			LocalPath  string `json:"local_path"`
		}

		body := struct {
			Name      string    `json:"name"`
			Owner     string    `json:"owner"`
			ServerURL string    `json:"server_url"`
			Mappings  []mapping `json:"mappings"`
		}{
			Name:      args[0],
			Owner:     workspaceOwner,
			ServerURL: args[1],
		}

		for _, m := range workspaceMaps {
			serverPath, localPath, ok := strings.Cut(m, "=")
			if !ok {
				return fmt.Errorf("invalid mapping %q, expected SERVER_PATH=LOCAL_PATH", m)
			}
			body.Mappings = append(body.Mappings, mapping{ServerPath: serverPath, LocalPath: localPath})
		}

		if len(body.Mappings) == 0 {
			return fmt.Errorf("at least one --map SERVER_PATH=LOCAL_PATH is required")
		}

		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		resp, err := http.Post(daemonURL("/workspaces"), "application/json", bytes.NewReader(b))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		if resp.StatusCode != http.StatusCreated {
			var result map[string]string
			_ = json.NewDecoder(resp.Body).Decode(&result)
			return fmt.Errorf("failed to add workspace: %s", result["error"])
		}

		fmt.Printf("workspace %s registered, run 'resolvo conflicts --refresh' to pick it up\n", args[0])
		return nil
	},
}

var workspaceRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a workspace registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, _ := http.NewRequest(http.MethodDelete, daemonURL("/workspaces/"+args[0]), nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		fmt.Printf("workspace %s removed\n", args[0])
		return nil
	},
}

func init() {
	workspaceAddCmd.Flags().StringVar(&workspaceOwner, "owner", "", "workspace owner name")
	workspaceAddCmd.Flags().StringArrayVar(&workspaceMaps, "map", nil, "mapping SERVER_PATH=LOCAL_PATH (repeatable)")
	workspaceCmd.AddCommand(workspaceListCmd, workspaceAddCmd, workspaceRemoveCmd)
	rootCmd.AddCommand(workspaceCmd)
}
