// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the sync
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the version and log file.
	App App `envPrefix:"APP_"`

	// Adapter holds the addresses and credentials of the sync server and
	// the auth service, plus transport tunables.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds the tunables of the outgoing queue, the incoming applier
	// and the state persister.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds the intervals of background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the local control API settings.
	Server Server `envPrefix:"SERVER_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. The format is chosen by extension (.yaml/.yml, anything else is
	// JSON). Populated via the CONFIG environment variable or the -c /
	// --config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds process-level settings.
type App struct {
	// Version is reported by the control API and the CLI.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogPath is the file the client logs to. Empty means a "logs" file
	// next to the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Adapter holds outbound connection settings.
type Adapter struct {
	// SyncURL is the websocket endpoint of the sync server
	// (e.g. "wss://sync.example.com/ws").
	// Env: ADAPTER_SYNC_URL
	SyncURL string `env:"SYNC_URL"`

	// AuthURL is the base URL of the auth service used to obtain a bearer
	// token (e.g. "https://auth.example.com").
	// Env: ADAPTER_AUTH_URL
	AuthURL string `env:"AUTH_URL"`

	// Login and Password are the credentials posted to AuthURL.
	// Env: ADAPTER_LOGIN, ADAPTER_PASSWORD
	Login    string `env:"LOGIN"`
	Password string `env:"PASSWORD"`

	// Token is a pre-provisioned bearer token. When set, AuthURL is not
	// contacted.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`

	// RequestTimeout bounds every HTTP request to the auth service.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HandshakeTimeout bounds the websocket opening handshake.
	// Env: ADAPTER_HANDSHAKE_TIMEOUT
	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT"`

	// ReconnectBaseDelay is the first reconnect delay; each further attempt
	// waits 1.5 times longer.
	// Env: ADAPTER_RECONNECT_BASE_DELAY
	ReconnectBaseDelay time.Duration `env:"RECONNECT_BASE_DELAY"`

	// MaxReconnectAttempts is the number of consecutive failed reconnects
	// after which the client gives up until the network comes back.
	// Env: ADAPTER_MAX_RECONNECT_ATTEMPTS
	MaxReconnectAttempts int `env:"MAX_RECONNECT_ATTEMPTS"`

	// PingInterval is the websocket keepalive period.
	// Env: ADAPTER_PING_INTERVAL
	PingInterval time.Duration `env:"PING_INTERVAL"`

	// ProbeURL is requested periodically to detect network availability.
	// Empty disables the network probe.
	// Env: ADAPTER_PROBE_URL
	ProbeURL string `env:"PROBE_URL"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local database.
type DB struct {
	// Driver is "sqlite3" (default) or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name: a SQLite file path or a Postgres URL.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Sync holds the engine tunables.
type Sync struct {
	// BatchSize caps the number of changes sent in one clt_send_changes.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// BatchDebounce delays a flush so bursts of edits share a round-trip.
	// Env: SYNC_BATCH_DEBOUNCE
	BatchDebounce time.Duration `env:"BATCH_DEBOUNCE"`

	// AckTimeout is how long a sent change may stay unacknowledged before
	// it is requeued.
	// Env: SYNC_ACK_TIMEOUT
	AckTimeout time.Duration `env:"ACK_TIMEOUT"`

	// PersistDebounce coalesces sync metadata writes.
	// Env: SYNC_PERSIST_DEBOUNCE
	PersistDebounce time.Duration `env:"PERSIST_DEBOUNCE"`

	// MaxApplyRetries is the number of retries after the first attempt to
	// apply an incoming batch. A batch still failing then is recorded as
	// failed.
	// Env: SYNC_MAX_APPLY_RETRIES
	MaxApplyRetries int `env:"MAX_APPLY_RETRIES"`

	// ApplyRetryDelay is the pause between apply attempts.
	// Env: SYNC_APPLY_RETRY_DELAY
	ApplyRetryDelay time.Duration `env:"APPLY_RETRY_DELAY"`

	// Tables restricts the tables the applier may write to. Empty allows
	// any valid table name.
	// Env: SYNC_TABLES (comma separated)
	Tables []string `env:"TABLES" envSeparator:","`

	// EntityIDField is the column holding the entity identifier.
	// Env: SYNC_ENTITY_ID_FIELD
	EntityIDField string `env:"ENTITY_ID_FIELD"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// AckSweepInterval is how often timed-out in-flight changes are
	// requeued.
	// Env: WORKERS_ACK_SWEEP_INTERVAL
	AckSweepInterval time.Duration `env:"ACK_SWEEP_INTERVAL"`

	// ProbeInterval is how often ProbeURL is requested.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Server holds settings for the local control API.
type Server struct {
	// HTTPAddress is the address the control API listens on, in
	// "host:port" format. Empty disables the control API.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of one control API request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// defaults returns the values used for every field left empty by all
// configuration sources.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: "dev",
		},
		Adapter: Adapter{
			RequestTimeout:       10 * time.Second,
			HandshakeTimeout:     10 * time.Second,
			ReconnectBaseDelay:   time.Second,
			MaxReconnectAttempts: 10,
			PingInterval:         30 * time.Second,
		},
		Storage: Storage{
			DB: DB{
				Driver: DriverSQLite,
				DSN:    "sync.db",
			},
		},
		Sync: Sync{
			BatchSize:       50,
			BatchDebounce:   50 * time.Millisecond,
			AckTimeout:      5 * time.Minute,
			PersistDebounce: 500 * time.Millisecond,
			MaxApplyRetries: 3,
			ApplyRetryDelay: 200 * time.Millisecond,
			EntityIDField:   "id",
		},
		Workers: Workers{
			AckSweepInterval: 30 * time.Second,
			ProbeInterval:    15 * time.Second,
		},
		Server: Server{
			HTTPAddress:    "127.0.0.1:7420",
			RequestTimeout: 30 * time.Second,
		},
	}
}

// Supported local database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (later sources override earlier
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags (flagCfg, may be nil)
//  3. JSON or YAML file (path resolved from sources 1 and 2)
//
// Defaults fill every field still empty afterwards.
func GetStructuredConfig(flagCfg *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(flagCfg).
		withFile().
		build()
}
