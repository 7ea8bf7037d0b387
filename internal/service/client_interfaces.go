package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/service_mock.go -package=mock

// ConnectionManager is the transport surface the services need. It is
// implemented by *connection.Manager.
type ConnectionManager interface {
	// Connect opens a connection session. Only authentication failures are
	// returned; transport failures are retried in the background.
	Connect(ctx context.Context) error
	// Disconnect closes the socket and suppresses reconnection.
	Disconnect()
	// Send writes msg to the open socket.
	Send(ctx context.Context, msg *models.Message) error
	IsConnected() bool
	Status() models.ConnectionStatus
}

// StatePersister keeps the singleton [models.SyncMetadata] in memory and
// writes it to the local store with debouncing.
type StatePersister interface {
	// Load reads the stored metadata. When none exists a fresh snapshot with
	// a new client id is created and written immediately.
	Load(ctx context.Context) (models.SyncMetadata, error)

	// Current returns the in-memory snapshot, including unsaved changes.
	Current() models.SyncMetadata

	// Save merges patch into the snapshot and schedules a write.
	Save(ctx context.Context, patch models.SyncMetadataPatch) error

	// Flush writes pending changes immediately.
	Flush(ctx context.Context) error

	// Reset generates a new client id, rewinds the LSN to the origin and
	// clears the pending count. The result is written immediately.
	Reset(ctx context.Context) (models.SyncMetadata, error)

	// Close flushes and stops the debounce timer.
	Close(ctx context.Context) error
}

// OutgoingProcessor captures local mutations, folds them and sends them to
// the server in batches.
type OutgoingProcessor interface {
	// TrackChange records a local mutation and schedules a send. For updates
	// with previous data only the differing fields are stored; when nothing
	// differs no record is created and the entity id is returned.
	TrackChange(ctx context.Context, table string, op models.Operation, data, previous map[string]any) (string, error)

	// ProcessQueuedChanges folds the queue and sends it now if connected.
	ProcessQueuedChanges(ctx context.Context) error

	// GetPendingChanges returns queued changes that are not awaiting an ack.
	GetPendingChanges(ctx context.Context) ([]models.LocalChange, error)
	GetPendingChangesCount(ctx context.Context) (int, error)
	// ClearUnprocessedChanges drops every pending and failed change.
	ClearUnprocessedChanges(ctx context.Context) (int64, error)

	GetFailedChanges(ctx context.Context) ([]models.LocalChange, error)
	// RetryFailedChanges moves failed changes back to pending. An empty ids
	// list retries all of them.
	RetryFailedChanges(ctx context.Context, ids []string) (int64, error)
	GetInFlightChanges() []models.InFlightChange

	HandleChangesReceived(ctx context.Context, msg *models.Message) error
	HandleChangesApplied(ctx context.Context, msg *models.Message) error

	// RequeueInFlight returns every sent but unacknowledged change to the
	// queue. It is called when the connection closes.
	RequeueInFlight(ctx context.Context) (int, error)
	// RequeueExpired returns changes whose ack timed out to the queue.
	RequeueExpired(ctx context.Context) (int, error)

	Close()
}

// ChangeApplier writes server changes to the local store.
type ChangeApplier interface {
	// ApplyChanges applies one batch in a single transaction, retrying the
	// whole batch on failure.
	ApplyChanges(ctx context.Context, changes []models.TableChange) (models.ApplyResult, error)
	// MarkAcknowledged records that the batch was acknowledged upstream.
	MarkAcknowledged(ctx context.Context, batchID string) error
	GetFailedServerChanges(ctx context.Context, limit int) ([]models.ServerChangeRecord, error)
}

// SyncCoordinator drives the sync protocol state machine.
type SyncCoordinator interface {
	// Start loads the persisted metadata and begins consuming connection
	// events. It does not connect.
	Start(ctx context.Context) error
	// Stop ends the session and flushes the persisted state.
	Stop(ctx context.Context) error

	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	// Resync discards the client identity and LSN and starts a new initial
	// sync.
	Resync(ctx context.Context) error

	Status(ctx context.Context) (models.EngineStatus, error)
}

// AckSweepJob periodically requeues outgoing changes whose ack timed out.
type AckSweepJob interface {
	// Start launches the sweep goroutine. Any running sweep is stopped first.
	Start(ctx context.Context, interval time.Duration)
	// Stop blocks until the sweep goroutine has exited.
	Stop()
}
