package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sync-engine/internal/client"
)

type clearQueueResult struct {
	Removed int64 `json:"removed"`
}

func newClearQueueCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-queue",
		Short: "Drop every pending and failed local change",
		Args:  cobra.NoArgs,
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

			removed, err := off.ClearQueue(cmd.Context())
			if err != nil {
				return err
			}

			return opts.write(cmd.OutOrStdout(), clearQueueResult{Removed: removed}, func(w io.Writer) {
				fmt.Fprintf(w, "Removed %d queued changes\n", removed)
			})
		},
	}
}
