package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

// QueueStatus is the persisted engine state as seen without a connection.
type QueueStatus struct {
	// Metadata is nil when the engine has never run against this database.
	Metadata            *models.SyncMetadata `json:"metadata,omitempty"`
	PendingChanges      int                  `json:"pendingChanges"`
	FailedChanges       int                  `json:"failedChanges"`
	FailedServerChanges int                  `json:"failedServerChanges"`
}

// Offline runs maintenance operations directly on the local database. It
// must not be used while an [App] holds the same database.
type Offline struct {
	storages *store.ClientStorages
	logger   *logger.Logger
}

// OpenOffline opens and migrates the configured local database.
func OpenOffline(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*Offline, error) {
	storages, err := store.NewClientStorages(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	return &Offline{storages: storages, logger: logger}, nil
}

// Status reads the persisted metadata and the queue counters.
func (o *Offline) Status(ctx context.Context) (QueueStatus, error) {
	var status QueueStatus

	meta, err := o.storages.SyncMetadata.Get(ctx)
	switch {
	case err == nil:
		status.Metadata = &meta
	case errors.Is(err, store.ErrSyncMetadataNotFound):
	default:
		return QueueStatus{}, fmt.Errorf("read sync metadata: %w", err)
	}

	if status.PendingChanges, err = o.storages.LocalChanges.CountByStatus(ctx, models.SyncStatusPending); err != nil {
		return QueueStatus{}, fmt.Errorf("count pending changes: %w", err)
	}
	if status.FailedChanges, err = o.storages.LocalChanges.CountByStatus(ctx, models.SyncStatusFailed); err != nil {
		return QueueStatus{}, fmt.Errorf("count failed changes: %w", err)
	}

	failed, err := o.storages.ServerChanges.ListFailed(ctx, 0)
	if err != nil {
		return QueueStatus{}, fmt.Errorf("list failed server changes: %w", err)
	}
	status.FailedServerChanges = len(failed)

	return status, nil
}

// Resync discards the client identity and rewinds the LSN so the next run
// starts a fresh initial sync.
func (o *Offline) Resync(ctx context.Context) (models.SyncMetadata, error) {
	persister := service.NewStatePersister(o.storages.SyncMetadata, 0, o.logger)
	defer func() { _ = persister.Close(ctx) }()

	return persister.Reset(ctx)
}

// ClearQueue drops every pending and failed local change.
func (o *Offline) ClearQueue(ctx context.Context) (int64, error) {
	removed, err := o.storages.LocalChanges.DeleteByStatus(ctx, models.SyncStatusPending, models.SyncStatusFailed)
	if err != nil {
		return 0, fmt.Errorf("clear queue: %w", err)
	}

	o.logger.Info().Int64("removed", removed).Msg("local change queue cleared")
	return removed, nil
}

// Close releases the database.
func (o *Offline) Close() error {
	return o.storages.Close()
}
