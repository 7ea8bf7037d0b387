package config

import (
	"fmt"
	"time"
)

// ClientApp holds process-level client settings.
type ClientApp struct {
	Version string
	LogPath string
}

// ClientAdapter holds the outbound connection settings.
type ClientAdapter struct {
	SyncURL              string
	AuthURL              string
	Login                string
	Password             string
	Token                string
	RequestTimeout       time.Duration
	HandshakeTimeout     time.Duration
	ReconnectBaseDelay   time.Duration
	MaxReconnectAttempts int
	PingInterval         time.Duration
	ProbeURL             string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// Driver is the database/sql driver name.
	Driver string
	// DSN is the SQLite/PostgreSQL connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync holds the engine tunables.
type ClientSync struct {
	BatchSize       int
	BatchDebounce   time.Duration
	AckTimeout      time.Duration
	PersistDebounce time.Duration
	MaxApplyRetries int
	ApplyRetryDelay time.Duration
	Tables          []string
	EntityIDField   string
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	AckSweepInterval time.Duration
	ProbeInterval    time.Duration
}

// ClientServer contains the local control API settings.
type ClientServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers
	Server  ClientServer
}

// GetClientConfig builds and validates the configuration of a running sync
// engine. flagCfg is the config returned by [BindFlags]; it may be nil.
func GetClientConfig(flagCfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg, err := loadClientConfig(flagCfg)
	if err != nil {
		return nil, err
	}

	return clientCfg, clientCfg.validate()
}

// GetOfflineConfig builds a configuration for commands that only work on
// the local database. Connection settings are not validated.
func GetOfflineConfig(flagCfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg, err := loadClientConfig(flagCfg)
	if err != nil {
		return nil, err
	}

	return clientCfg, clientCfg.validateStorage()
}

func loadClientConfig(flagCfg *StructuredConfig) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flagCfg)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg), nil
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Version: cfg.App.Version,
			LogPath: cfg.App.LogPath,
		},
		Adapter: ClientAdapter{
			SyncURL:              cfg.Adapter.SyncURL,
			AuthURL:              cfg.Adapter.AuthURL,
			Login:                cfg.Adapter.Login,
			Password:             cfg.Adapter.Password,
			Token:                cfg.Adapter.Token,
			RequestTimeout:       cfg.Adapter.RequestTimeout,
			HandshakeTimeout:     cfg.Adapter.HandshakeTimeout,
			ReconnectBaseDelay:   cfg.Adapter.ReconnectBaseDelay,
			MaxReconnectAttempts: cfg.Adapter.MaxReconnectAttempts,
			PingInterval:         cfg.Adapter.PingInterval,
			ProbeURL:             cfg.Adapter.ProbeURL,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Driver: cfg.Storage.DB.Driver,
				DSN:    cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			BatchSize:       cfg.Sync.BatchSize,
			BatchDebounce:   cfg.Sync.BatchDebounce,
			AckTimeout:      cfg.Sync.AckTimeout,
			PersistDebounce: cfg.Sync.PersistDebounce,
			MaxApplyRetries: cfg.Sync.MaxApplyRetries,
			ApplyRetryDelay: cfg.Sync.ApplyRetryDelay,
			Tables:          cfg.Sync.Tables,
			EntityIDField:   cfg.Sync.EntityIDField,
		},
		Workers: ClientWorkers{
			AckSweepInterval: cfg.Workers.AckSweepInterval,
			ProbeInterval:    cfg.Workers.ProbeInterval,
		},
		Server: ClientServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}
}
