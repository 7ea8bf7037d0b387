package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

// ClientStorages groups the repositories of the sync engine's persisted
// state together with the [LocalStore] the applier writes through.
type ClientStorages struct {
	SyncMetadata  SyncMetadataRepository
	LocalChanges  LocalChangeRepository
	ServerChanges ServerChangeRepository
	LocalStore    LocalStore

	db *DB
}

// NewClientStorages opens the configured local database, applies pending
// migrations and constructs the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewClientStoragesFromDB(db, logger), nil
}

// NewClientStoragesFromDB wires repositories over an already migrated db.
func NewClientStoragesFromDB(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		SyncMetadata:  NewSyncMetadataRepository(db, logger),
		LocalChanges:  NewLocalChangeRepository(db, logger),
		ServerChanges: NewServerChangeRepository(db, logger),
		LocalStore:    db,
		db:            db,
	}
}

// Close releases the database pool.
func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
