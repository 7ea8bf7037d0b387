package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sync-engine/internal/client"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the persisted sync state and queue counts",
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

			status, err := off.Status(cmd.Context())
			if err != nil {
				return err
			}

			return opts.write(cmd.OutOrStdout(), status, func(w io.Writer) {
				printStatus(w, status)
			})
		},
	}
}

func printStatus(w io.Writer, s client.QueueStatus) {
	if s.Metadata == nil {
		fmt.Fprintln(w, "Client ID:       (never synced)")
	} else {
		fmt.Fprintf(w, "Client ID:       %s\n", s.Metadata.ClientID)
		fmt.Fprintf(w, "LSN:             %s\n", s.Metadata.CurrentLSN)
		fmt.Fprintf(w, "State:           %s\n", s.Metadata.SyncState)
		if s.Metadata.LastSyncTime != nil {
			fmt.Fprintf(w, "Last sync:       %s\n", s.Metadata.LastSyncTime.Format(time.RFC3339))
		} else {
			fmt.Fprintln(w, "Last sync:       never")
		}
	}
	fmt.Fprintf(w, "Pending changes: %d\n", s.PendingChanges)
	fmt.Fprintf(w, "Failed changes:  %d\n", s.FailedChanges)
	fmt.Fprintf(w, "Failed incoming: %d\n", s.FailedServerChanges)
}
