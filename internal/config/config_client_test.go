package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientConfig() *ClientConfig {
	cfg := newClientConfig(defaults())
	cfg.Adapter.SyncURL = "wss://sync.example.com/ws"
	cfg.Adapter.Token = "tok"
	return cfg
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr error
	}{
		{name: "valid with token", mutate: func(*ClientConfig) {}},
		{
			name: "valid with credentials",
			mutate: func(c *ClientConfig) {
				c.Adapter.Token = ""
				c.Adapter.AuthURL = "https://auth.example.com"
				c.Adapter.Login = "alice"
			},
		},
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "in-memory dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "missing sync url", mutate: func(c *ClientConfig) { c.Adapter.SyncURL = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "bad sync url scheme", mutate: func(c *ClientConfig) { c.Adapter.SyncURL = "ftp://x" }, wantErr: ErrInvalidAdapterConfigs},
		{
			name: "no credential source",
			mutate: func(c *ClientConfig) {
				c.Adapter.Token = ""
				c.Adapter.AuthURL = "https://auth.example.com"
			},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{name: "zero batch size", mutate: func(c *ClientConfig) { c.Sync.BatchSize = 0 }, wantErr: ErrInvalidSyncConfigs},
		{name: "empty id field", mutate: func(c *ClientConfig) { c.Sync.EntityIDField = "" }, wantErr: ErrInvalidSyncConfigs},
		{name: "zero sweep interval", mutate: func(c *ClientConfig) { c.Workers.AckSweepInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
		{
			name: "probe without interval",
			mutate: func(c *ClientConfig) {
				c.Adapter.ProbeURL = "https://example.com"
				c.Workers.ProbeInterval = 0
			},
			wantErr: ErrInvalidWorkerConfigs,
		},
		{name: "empty version", mutate: func(c *ClientConfig) { c.App.Version = "" }, wantErr: ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetClientConfig_FromFlags(t *testing.T) {
	cfg, err := GetClientConfig(&StructuredConfig{
		Adapter: Adapter{SyncURL: "ws://localhost:9000/sync", Token: "tok"},
		Storage: Storage{DB: DB{DSN: t.TempDir() + "/sync.db"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:9000/sync", cfg.Adapter.SyncURL)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, 50, cfg.Sync.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.Sync.AckTimeout)
	assert.Equal(t, "id", cfg.Sync.EntityIDField)
}

func TestGetClientConfig_MissingSyncURL(t *testing.T) {
	_, err := GetClientConfig(&StructuredConfig{
		Storage: Storage{DB: DB{DSN: t.TempDir() + "/sync.db"}},
	})
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

func TestGetOfflineConfig_SkipsAdapterValidation(t *testing.T) {
	cfg, err := GetOfflineConfig(&StructuredConfig{
		Storage: Storage{DB: DB{DSN: t.TempDir() + "/sync.db"}},
	})
	require.NoError(t, err)
	assert.Empty(t, cfg.Adapter.SyncURL)
}
