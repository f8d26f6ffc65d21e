package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/admindash/internal/api"
	"github.com/jon4hz/admindash/internal/config"
	"github.com/jon4hz/admindash/internal/database"
	"github.com/jon4hz/admindash/internal/engine"
	"github.com/jon4hz/admindash/internal/prefs"
	"github.com/jon4hz/admindash/internal/token"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admindash server",
	Long:  `Start the admindash server serving the login page and the dashboard.`,
	Example: `admindash serve --config config.yml
admindash serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	var backend prefs.Backend = prefs.SessionBackend{}
	if cfg.UsesDatabase() {
		db, err := database.New(cfg.Database.Path)
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		defer db.Close() //nolint: errcheck

		device := prefs.NewDeviceBackend(db, cfg)
		backend = device

		eng, err := engine.New(cfg, db, nil, device)
		if err != nil {
			log.Fatalf("failed to create engine: %v", err)
		}
		defer eng.Close() //nolint: errcheck

		g.Go(func() error {
			return eng.Run(ctx)
		})
	}
	log.Info("Using preference store", "type", cfg.Store.Type, "cache", cfg.Cache.Type)

	tokens := token.NewPlaceholder(cfg.TokenPrefix, nil)
	server, err := api.New(cfg, backend, tokens, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	g.Go(func() error {
		return server.Run(ctx)
	})

	log.Info("admindash started successfully")
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("admindash stopped with an error", "error", err)
		return
	}
	log.Info("admindash shut down gracefully")
}
