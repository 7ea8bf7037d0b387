package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

const appName = "go-sync-engine"

var validFormats = []string{"text", "json"}

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	flagCfg *config.StructuredConfig
	format  string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sync-engine",
		Short: "Local-first sync engine client",
		Long: `Runs the local-first sync engine against a sync server and inspects
its persisted state.

Configuration is read from environment variables, flags and an optional
JSON or YAML file (-c).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)
			}
			return nil
		},
	}

	opts.flagCfg = config.BindFlags(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "output format (text|json)")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newResyncCommand(opts))
	cmd.AddCommand(newClearQueueCommand(opts))
	cmd.AddCommand(newMonitorCommand(opts))
	cmd.AddCommand(newVersionCommand(opts))

	return cmd
}

// offlineConfig loads the configuration of commands that only touch the
// local database.
func (o *rootOptions) offlineConfig() (*config.ClientConfig, error) {
	cfg, err := config.GetOfflineConfig(o.flagCfg)
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}
	return cfg, nil
}

func (o *rootOptions) logger(cfg *config.ClientConfig) *logger.Logger {
	return logger.NewClientLogger(appName, cfg.App.LogPath)
}

// write prints v as indented JSON or through text, depending on --format.
func (o *rootOptions) write(w io.Writer, v any, text func(io.Writer)) error {
	if o.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
