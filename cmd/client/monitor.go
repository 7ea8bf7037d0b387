package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/tui"
)

func newMonitorCommand(opts *rootOptions) *cobra.Command {
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Watch a running engine through its control API",
		Long: `Opens a terminal dashboard for an engine started with "run". The
dashboard polls the control API (-a) and sends connect, disconnect, flush,
retry and resync commands to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.offlineConfig()
			if err != nil {
				return err
			}
			log := opts.logger(cfg)

			api, err := adapter.NewControlClient(cfg.Server.HTTPAddress, cfg.Server.RequestTimeout, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			return tui.New(api, refresh, log).Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&refresh, "refresh", time.Second, "poll interval")

	return cmd
}
