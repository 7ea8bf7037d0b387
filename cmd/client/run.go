package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sync-engine/internal/client"
	"github.com/MKhiriev/go-sync-engine/internal/config"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the sync engine and the control API",
		Long: `Starts the sync engine, connects to the sync server and serves the
local control API until SIGINT or SIGTERM. Queued state is flushed to the
local database before exit.

Example:
  sync-engine run --sync-url wss://sync.example.com/ws --token $TOKEN
  sync-engine run -c engine.yaml -a 127.0.0.1:7420`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildInfo()
			fmt.Fprint(cmd.OutOrStdout(), info)

			cfg, err := config.GetClientConfig(opts.flagCfg)
			if err != nil {
				return fmt.Errorf("error getting configs: %w", err)
			}
			if info.HasVersion() {
				cfg.App.Version = info.Version
			}

			log := opts.logger(cfg)
			log.Debug().Str("sync_url", cfg.Adapter.SyncURL).Str("dsn", cfg.Storage.DB.DSN).Msg("received configs")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
			defer stop()

			app, err := client.NewApp(ctx, cfg, log)
			if err != nil {
				log.Err(err).Msg("init client app error")
				return err
			}

			if err = app.Run(ctx); err != nil {
				log.Err(err).Msg("client run error")
				return err
			}
			return nil
		},
	}
}
