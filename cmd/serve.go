package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bg3-modsettings/core/loader"
	"bg3-modsettings/core/server"
	"bg3-modsettings/feature/backup"
	"bg3-modsettings/feature/integrity"
	"bg3-modsettings/feature/modsettings"
	"bg3-modsettings/feature/scriptextender"
	"bg3-modsettings/feature/vfs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP hook server",
	Long:  `Starts the HTTP hook server the mod manager calls on profile, install and run events.`,
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	logg := e.log
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	ctx := context.Background()
	svc := e.service(e.history(ctx))

	client, err := e.storage()
	if err != nil {
		return err
	}

	mgr := loader.NewManager()
	mgr.Register(modsettings.NewFeature(svc))
	mgr.Register(scriptextender.NewFeature(e.relocator()))
	mgr.Register(vfs.NewFeature(vfs.NewMapper(e.gamePaths(), logg), e.profiles()))
	mgr.Register(backup.NewFeature(client, e.cfg.Storage.Bucket, e.cfg.Backup, e.profiles(), logg))
	mgr.Register(integrity.NewFeature(integrity.Config{
		ToolPath:   e.cfg.Game.ToolPath,
		ScratchDir: e.cfg.Game.ScratchDir,
	}, e.profiles(), client, e.cfg.Storage.Bucket, logg))

	app := server.NewApp(e.cfg.Server, logg)
	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server",
			zap.String("address", e.cfg.Server.Address()),
			zap.Strings("features", loaded),
		)
		errCh <- app.Listen(e.cfg.Server.Address())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	logg.Info("Shutting down server...")
	timeout := time.Duration(e.cfg.Server.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		return app.Shutdown()
	}
	return app.ShutdownWithTimeout(timeout)
}
