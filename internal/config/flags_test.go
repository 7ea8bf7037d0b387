package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8080},
			expected: "localhost:8080",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 8080},
			expected: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.addr.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    NetAddress
	}{
		{name: "localhost", input: "localhost:7420", expected: NetAddress{Host: "localhost", Port: 7420}},
		{name: "ipv4", input: "127.0.0.1:80", expected: NetAddress{Host: "127.0.0.1", Port: 80}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "bad host", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
		})
	}
}

func TestBindFlags_ApplyRetriesUsage(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)

	flag := fs.Lookup("max-apply-retries")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "retries after the first attempt")
}

func TestBindFlags_ParsesValues(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := BindFlags(fs)

	err := fs.Parse([]string{
		"-a", "127.0.0.1:9000",
		"-c", "/etc/sync.yaml",
		"-d", "/tmp/sync.db",
		"--driver", "sqlite3",
		"--sync-url", "wss://sync",
		"--token", "tok",
		"--batch-size", "20",
		"--batch-debounce", "75ms",
		"--ack-timeout", "2m",
		"--tables", "tasks,projects",
		"--max-reconnect-attempts", "7",
		"--ack-sweep-interval", "10s",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "/etc/sync.yaml", cfg.ConfigFilePath)
	assert.Equal(t, "/tmp/sync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, "wss://sync", cfg.Adapter.SyncURL)
	assert.Equal(t, "tok", cfg.Adapter.Token)
	assert.Equal(t, 20, cfg.Sync.BatchSize)
	assert.Equal(t, 75*time.Millisecond, cfg.Sync.BatchDebounce)
	assert.Equal(t, 2*time.Minute, cfg.Sync.AckTimeout)
	assert.Equal(t, []string{"tasks", "projects"}, cfg.Sync.Tables)
	assert.Equal(t, 7, cfg.Adapter.MaxReconnectAttempts)
	assert.Equal(t, 10*time.Second, cfg.Workers.AckSweepInterval)
}

func TestBindFlags_UnsetFlagsStayZero(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := BindFlags(fs)

	require.NoError(t, fs.Parse(nil))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBindFlags_RejectsBadAddress(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)

	err := fs.Parse([]string{"--address", "nowhere"})
	assert.Error(t, err)
}
