package service

import (
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/events"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
)

// ClientServices groups the components of one running sync engine.
type ClientServices struct {
	Persister   StatePersister
	Outgoing    OutgoingProcessor
	Applier     ChangeApplier
	Coordinator SyncCoordinator
	AckSweepJob AckSweepJob
}

// NewClientServices wires the engine over storages. The persister is built
// by the caller because the connection manager's handshake reads it.
func NewClientServices(
	storages *store.ClientStorages,
	persister StatePersister,
	conn ConnectionManager,
	bus *events.Bus,
	cfg config.ClientSync,
	logger *logger.Logger,
) *ClientServices {
	clientID := func() string { return persister.Current().ClientID }

	outgoing := NewOutgoingProcessor(storages.LocalChanges, conn, bus, clientID, cfg, logger)
	applier := NewChangeApplier(storages.LocalStore, storages.ServerChanges, bus, cfg, logger)

	return &ClientServices{
		Persister:   persister,
		Outgoing:    outgoing,
		Applier:     applier,
		Coordinator: NewSyncCoordinator(conn, persister, outgoing, applier, bus, logger),
		AckSweepJob: NewAckSweepJob(outgoing, logger),
	}
}
