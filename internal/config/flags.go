package config

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// BindFlags registers every configuration flag on fs and returns the config
// the parsed values are written to. The returned config is only meaningful
// after fs has been parsed (cobra does this before running a command).
//
// Flags:
//
//	-a/--address control API address in format [host]:[port]
//	-c/--config JSON or YAML config file path
//	-d/--dsn local database DSN
//	--driver local database driver (sqlite3 | pgx)
//	--log-path client log file
//	--sync-url sync server websocket URL
//	--auth-url auth service URL
//	--login / --password auth credentials
//	--token pre-provisioned bearer token
//	--request-timeout auth request timeout (e.g., "10s")
//	--handshake-timeout websocket handshake timeout
//	--reconnect-base-delay first reconnect delay
//	--max-reconnect-attempts reconnect attempts before giving up
//	--ping-interval websocket keepalive period
//	--probe-url network probe URL
//	--batch-size changes per send
//	--batch-debounce flush debounce window
//	--ack-timeout requeue timeout for unacknowledged changes
//	--persist-debounce sync metadata write coalescing window
//	--max-apply-retries incoming batch apply retries after the first attempt
//	--apply-retry-delay pause between apply attempts
//	--tables comma separated table allow-list
//	--entity-id-field entity identifier column
//	--ack-sweep-interval ack sweeper period
//	--probe-interval network probe period
func BindFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}
	address := &addressFlag{target: &cfg.Server.HTTPAddress}

	fs.VarP(address, "address", "a", "Control API net address host:port")
	fs.StringVarP(&cfg.ConfigFilePath, "config", "c", "", "JSON or YAML config file path")
	fs.StringVarP(&cfg.Storage.DB.DSN, "dsn", "d", "", "Local database DSN")
	fs.StringVar(&cfg.Storage.DB.Driver, "driver", "", "Local database driver (sqlite3, pgx)")
	fs.StringVar(&cfg.App.LogPath, "log-path", "", "Log file path")

	fs.StringVar(&cfg.Adapter.SyncURL, "sync-url", "", "Sync server websocket URL")
	fs.StringVar(&cfg.Adapter.AuthURL, "auth-url", "", "Auth service URL")
	fs.StringVar(&cfg.Adapter.Login, "login", "", "Auth login")
	fs.StringVar(&cfg.Adapter.Password, "password", "", "Auth password")
	fs.StringVar(&cfg.Adapter.Token, "token", "", "Pre-provisioned bearer token")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Auth request timeout (e.g., 10s)")
	fs.DurationVar(&cfg.Adapter.HandshakeTimeout, "handshake-timeout", 0, "Websocket handshake timeout")
	fs.DurationVar(&cfg.Adapter.ReconnectBaseDelay, "reconnect-base-delay", 0, "First reconnect delay")
	fs.IntVar(&cfg.Adapter.MaxReconnectAttempts, "max-reconnect-attempts", 0, "Reconnect attempts before giving up")
	fs.DurationVar(&cfg.Adapter.PingInterval, "ping-interval", 0, "Websocket keepalive period")
	fs.StringVar(&cfg.Adapter.ProbeURL, "probe-url", "", "Network probe URL")

	fs.IntVar(&cfg.Sync.BatchSize, "batch-size", 0, "Changes per send")
	fs.DurationVar(&cfg.Sync.BatchDebounce, "batch-debounce", 0, "Flush debounce window (e.g., 50ms)")
	fs.DurationVar(&cfg.Sync.AckTimeout, "ack-timeout", 0, "Requeue timeout for unacknowledged changes")
	fs.DurationVar(&cfg.Sync.PersistDebounce, "persist-debounce", 0, "Sync metadata write coalescing window")
	fs.IntVar(&cfg.Sync.MaxApplyRetries, "max-apply-retries", 0, "Incoming batch apply retries after the first attempt")
	fs.DurationVar(&cfg.Sync.ApplyRetryDelay, "apply-retry-delay", 0, "Pause between apply attempts")
	fs.StringSliceVar(&cfg.Sync.Tables, "tables", nil, "Comma separated table allow-list")
	fs.StringVar(&cfg.Sync.EntityIDField, "entity-id-field", "", "Entity identifier column")

	fs.DurationVar(&cfg.Workers.AckSweepInterval, "ack-sweep-interval", 0, "Ack sweeper period")
	fs.DurationVar(&cfg.Workers.ProbeInterval, "probe-interval", 0, "Network probe period")

	return cfg
}

// addressFlag writes a validated NetAddress into a string field.
type addressFlag struct {
	addr   NetAddress
	target *string
}

func (f *addressFlag) String() string { return f.addr.String() }

func (f *addressFlag) Type() string { return "host:port" }

func (f *addressFlag) Set(s string) error {
	if err := f.addr.Set(s); err != nil {
		return err
	}
	*f.target = f.addr.String()
	return nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
