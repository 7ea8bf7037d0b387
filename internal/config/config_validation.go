// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants that do not depend on how the client is run.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.Driver != DriverSQLite && cfg.Storage.DB.Driver != DriverPostgres {
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if err := cfg.validateStorage(); err != nil {
		return err
	}

	if !isWebsocketURL(cfg.Adapter.SyncURL) {
		return fmt.Errorf("%w: sync url %q", ErrInvalidAdapterConfigs, cfg.Adapter.SyncURL)
	}

	if cfg.Adapter.Token == "" && (cfg.Adapter.AuthURL == "" || cfg.Adapter.Login == "") {
		return fmt.Errorf("%w: either a token or auth url with login is required", ErrInvalidAdapterConfigs)
	}

	if cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.MaxReconnectAttempts <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.BatchSize <= 0 || cfg.Sync.MaxApplyRetries <= 0 || cfg.Sync.AckTimeout <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.AckSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Adapter.ProbeURL != "" && cfg.Workers.ProbeInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validateStorage() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.EntityIDField == "" {
		return ErrInvalidSyncConfigs
	}

	if cfg.App.Version == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func isWebsocketURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}

	switch u.Scheme {
	case "ws", "wss", "http", "https":
		return true
	default:
		return false
	}
}
