package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig mirrors [StructuredConfig] for JSON and YAML files.
// Durations are written as strings ("30s", "5m").
type StructuredFileConfig struct {
	App struct {
		Version string `json:"version" yaml:"version"`
		LogPath string `json:"log_path" yaml:"log_path"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Adapter struct {
		SyncURL              string   `json:"sync_url" yaml:"sync_url"`
		AuthURL              string   `json:"auth_url" yaml:"auth_url"`
		Login                string   `json:"login" yaml:"login"`
		Password             string   `json:"password" yaml:"password"`
		Token                string   `json:"token" yaml:"token"`
		RequestTimeout       Duration `json:"request_timeout" yaml:"request_timeout"`
		HandshakeTimeout     Duration `json:"handshake_timeout" yaml:"handshake_timeout"`
		ReconnectBaseDelay   Duration `json:"reconnect_base_delay" yaml:"reconnect_base_delay"`
		MaxReconnectAttempts int      `json:"max_reconnect_attempts" yaml:"max_reconnect_attempts"`
		PingInterval         Duration `json:"ping_interval" yaml:"ping_interval"`
		ProbeURL             string   `json:"probe_url" yaml:"probe_url"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver" yaml:"driver"`
			DSN    string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Sync struct {
		BatchSize       int      `json:"batch_size" yaml:"batch_size"`
		BatchDebounce   Duration `json:"batch_debounce" yaml:"batch_debounce"`
		AckTimeout      Duration `json:"ack_timeout" yaml:"ack_timeout"`
		PersistDebounce Duration `json:"persist_debounce" yaml:"persist_debounce"`
		MaxApplyRetries int      `json:"max_apply_retries" yaml:"max_apply_retries"`
		ApplyRetryDelay Duration `json:"apply_retry_delay" yaml:"apply_retry_delay"`
		Tables          []string `json:"tables" yaml:"tables"`
		EntityIDField   string   `json:"entity_id_field" yaml:"entity_id_field"`
	} `json:"sync,omitempty" yaml:"sync,omitempty"`

	Workers struct {
		AckSweepInterval Duration `json:"ack_sweep_interval" yaml:"ack_sweep_interval"`
		ProbeInterval    Duration `json:"probe_interval" yaml:"probe_interval"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server,omitempty" yaml:"server,omitempty"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.toStructured(), nil
}

func (f *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: f.App.Version,
			LogPath: f.App.LogPath,
		},
		Adapter: Adapter{
			SyncURL:              f.Adapter.SyncURL,
			AuthURL:              f.Adapter.AuthURL,
			Login:                f.Adapter.Login,
			Password:             f.Adapter.Password,
			Token:                f.Adapter.Token,
			RequestTimeout:       time.Duration(f.Adapter.RequestTimeout),
			HandshakeTimeout:     time.Duration(f.Adapter.HandshakeTimeout),
			ReconnectBaseDelay:   time.Duration(f.Adapter.ReconnectBaseDelay),
			MaxReconnectAttempts: f.Adapter.MaxReconnectAttempts,
			PingInterval:         time.Duration(f.Adapter.PingInterval),
			ProbeURL:             f.Adapter.ProbeURL,
		},
		Storage: Storage{
			DB: DB{
				Driver: f.Storage.DB.Driver,
				DSN:    f.Storage.DB.DSN,
			},
		},
		Sync: Sync{
			BatchSize:       f.Sync.BatchSize,
			BatchDebounce:   time.Duration(f.Sync.BatchDebounce),
			AckTimeout:      time.Duration(f.Sync.AckTimeout),
			PersistDebounce: time.Duration(f.Sync.PersistDebounce),
			MaxApplyRetries: f.Sync.MaxApplyRetries,
			ApplyRetryDelay: time.Duration(f.Sync.ApplyRetryDelay),
			Tables:          f.Sync.Tables,
			EntityIDField:   f.Sync.EntityIDField,
		},
		Workers: Workers{
			AckSweepInterval: time.Duration(f.Workers.AckSweepInterval),
			ProbeInterval:    time.Duration(f.Workers.ProbeInterval),
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
		},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling
// from strings like "1h", "30s" in JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}

	var ns int64
	if err := node.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(ns))
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
