package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resolvo/internal/daemon"
	"resolvo/internal/localfs"
	"resolvo/internal/logger"
	"resolvo/internal/mergers"
	"resolvo/internal/repository"
	"resolvo/internal/resolve"
	"resolvo/internal/vcs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resolution daemon",
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	defer logger.Sync()

	wsRepo := repository.NewWorkspaceRepository()
	workspaces, err := wsRepo.GetAll()
	if err != nil {
		return err
	}

	tokenPath, err := cfg.TokenPath()
	if err != nil {
		return err
	}
	token, err := vcs.LoadToken(tokenPath)
	if err != nil {
		return err
	}
	if token == nil {
		logger.Log.Warn("no access token stored, talking to servers anonymously; run 'resolvo auth' to store one")
	}

	clients := func(serverURL string) vcs.Client {
		return vcs.NewRestClient(serverURL, token)
	}

	files, err := localfs.NewIndex(cfg.BufferSize, cfg.Ignore)
	if err != nil {
		return err
	}
	defer func() {
		_ = files.Close()
	}()

	handles := make([]resolve.Workspace, 0, len(workspaces))
	for i := range workspaces {
		ws := &workspaces[i]
		handles = append(handles, resolve.Workspace{Info: ws, Client: clients(ws.ServerURL)})

		for _, m := range ws.Mappings {
			if err := files.Watch(m.LocalPath); err != nil {
				logger.Log.Warn("failed to watch mapping root",
					zap.String("path", m.LocalPath),
					zap.Error(err))
			}
		}
	}

	if len(workspaces) == 0 {
		logger.Log.Info("no workspaces configured, use 'resolvo workspace add' to register one")
	}
	logger.Log.Info("local index ready", zap.Int("files", files.Size()))

	names, err := mergers.NewPolicyNameMerger(cfg.NameMerge)
	if err != nil {
		return err
	}
	content := mergers.NewThreeWayMerger()

	sess, err := daemon.NewSession(cmd.Context(), handles, names, content, files)
	if err != nil {
		return err
	}

	deps := daemon.Deps{Names: names, Content: content, Files: files, Clients: clients}
	srv := daemon.NewServer(sess, deps, cfg.DaemonPort)
	srv.Start()

	logger.Log.Info("resolvo daemon started",
		zap.Int("workspaces", len(workspaces)),
		zap.Int("pending", len(sess.Resolver.Conflicts())),
		zap.Int("port", cfg.DaemonPort))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Log.Info("shutting down",
			zap.String("signal", sig.String()))
	case <-srv.StopCh():
		logger.Log.Info("stop requested via API")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
