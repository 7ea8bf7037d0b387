package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/connection"
	"github.com/MKhiriev/go-sync-engine/internal/events"
	"github.com/MKhiriev/go-sync-engine/internal/handler"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/server"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/workers"
)

const shutdownTimeout = 10 * time.Second

var _ Client = (*App)(nil)

// App is one running sync engine.
type App struct {
	cfg *config.ClientConfig

	storages *store.ClientStorages
	bus      *events.Bus
	conn     *connection.Manager
	services *service.ClientServices
	workers  *workers.Workers
	server   server.Server

	logger *logger.Logger
}

// NewApp opens the local database and wires every engine component. Nothing
// is started until Run.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	app, err := newApp(cfg, storages, logger)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}
	return app, nil
}

func newApp(cfg *config.ClientConfig, storages *store.ClientStorages, logger *logger.Logger) (*App, error) {
	persister := service.NewStatePersister(storages.SyncMetadata, cfg.Sync.PersistDebounce, logger)

	tokens, err := adapter.NewTokenProvider(cfg.Adapter, func() string { return persister.Current().ClientID }, logger)
	if err != nil {
		return nil, fmt.Errorf("create token provider: %w", err)
	}

	bus := events.NewBus()
	conn := connection.NewManager(connection.Config{
		URL:                  cfg.Adapter.SyncURL,
		HandshakeTimeout:     cfg.Adapter.HandshakeTimeout,
		ReconnectBaseDelay:   cfg.Adapter.ReconnectBaseDelay,
		MaxReconnectAttempts: cfg.Adapter.MaxReconnectAttempts,
		PingInterval:         cfg.Adapter.PingInterval,
	}, service.NewHandshake(persister, tokens), bus, logger)

	services := service.NewClientServices(storages, persister, conn, bus, cfg.Sync, logger)

	var probe adapter.NetworkProbe
	if cfg.Adapter.ProbeURL != "" {
		probe = adapter.NewNetworkProbe(cfg.Adapter.ProbeURL, cfg.Adapter.RequestTimeout, logger)
	}

	app := &App{
		cfg:      cfg,
		storages: storages,
		bus:      bus,
		conn:     conn,
		services: services,
		workers:  workers.NewWorkers(services, probe, conn, cfg.Workers, logger),
		logger:   logger,
	}

	if cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(services, cfg.Server, cfg.App.Version, logger)
		if err != nil {
			return nil, fmt.Errorf("create handlers: %w", err)
		}
		app.server, err = server.NewServer(handlers, cfg.Server, logger)
		if err != nil {
			return nil, fmt.Errorf("create server: %w", err)
		}
	}

	return app, nil
}

// Run starts the engine, connects and blocks until ctx is cancelled or the
// control API fails. The engine is stopped and its state flushed before Run
// returns. A rejected credential does not stop the engine: local changes
// keep queueing and a reconnect can be requested through the control API.
func (a *App) Run(ctx context.Context) error {
	if err := a.services.Coordinator.Start(ctx); err != nil {
		return errors.Join(err, a.shutdown())
	}
	a.workers.Run(ctx)

	serverCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()

	serverErr := make(chan error, 1)
	if a.server != nil {
		go func() {
			serverErr <- a.server.RunServer(serverCtx)
		}()
	}

	if err := a.services.Coordinator.Connect(ctx); err != nil {
		a.logger.Err(err).Msg("initial connect failed, running offline")
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info().Msg("stop requested")
	case runErr = <-serverErr:
		a.logger.Err(runErr).Msg("control API stopped")
		a.server = nil
	}

	stopServer()
	if a.server != nil {
		if err := <-serverErr; err != nil {
			runErr = err
		}
	}

	return errors.Join(runErr, a.shutdown())
}

// shutdown stops every component in reverse wiring order.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.workers.Stop()

	var errs []error
	if err := a.services.Coordinator.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	a.conn.Close()
	a.services.Outgoing.Close()

	if err := a.services.Persister.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	a.bus.Close()

	if err := a.storages.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close local storage: %w", err))
	}

	a.logger.Info().Msg("sync engine stopped")
	return errors.Join(errs...)
}
