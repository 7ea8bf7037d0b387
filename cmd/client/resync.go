package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sync-engine/internal/client"
)

func newResyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resync",
		Short: "Discard the client identity so the next run performs an initial sync",
		Long: `Generates a new client id and rewinds the LSN to the origin. The next
run downloads the full data set again. Queued local changes are kept.

The engine must not be running against the same database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.offlineConfig()
			if err != nil {
				return err
			}

			off, err := client.OpenOffline(cmd.Context(), cfg.Storage, opts.logger(cfg))
			if err != nil {
				return err
			}
			defer func() { _ = off.Close() }()

			meta, err := off.Resync(cmd.Context())
			if err != nil {
				return err
			}

			return opts.write(cmd.OutOrStdout(), meta, func(w io.Writer) {
				fmt.Fprintf(w, "New client ID: %s\n", meta.ClientID)
			})
		},
	}
}
