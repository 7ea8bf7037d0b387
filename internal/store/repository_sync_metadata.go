// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

type syncMetadataRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSyncMetadataRepository constructs a [SyncMetadataRepository] over db.
func NewSyncMetadataRepository(db *DB, logger *logger.Logger) SyncMetadataRepository {
	logger.Debug().Msg("creating sync metadata repository")
	return &syncMetadataRepository{
		db:     db,
		logger: logger,
	}
}

func (r *syncMetadataRepository) Get(ctx context.Context) (models.SyncMetadata, error) {
	log := logger.FromContext(ctx)

	var (
		meta         models.SyncMetadata
		lsn          string
		state        string
		lastSyncTime sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, getSyncMetadata).Scan(
		&meta.ClientID,
		&lsn,
		&state,
		&meta.PendingChangesCount,
		&lastSyncTime,
		&meta.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncMetadata{}, ErrSyncMetadataNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*syncMetadataRepository.Get").Msg("error scanning sync metadata")
		return models.SyncMetadata{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	meta.CurrentLSN = models.LSN(lsn)
	meta.SyncState = models.SyncState(state)
	if lastSyncTime.Valid {
		t := lastSyncTime.Time.UTC()
		meta.LastSyncTime = &t
	}
	meta.UpdatedAt = meta.UpdatedAt.UTC()

	return meta, nil
}

func (r *syncMetadataRepository) Save(ctx context.Context, meta models.SyncMetadata) error {
	log := logger.FromContext(ctx)

	var lastSyncTime sql.NullTime
	if meta.LastSyncTime != nil {
		lastSyncTime = sql.NullTime{Time: meta.LastSyncTime.UTC(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, saveSyncMetadata,
		meta.ClientID,
		string(meta.CurrentLSN),
		string(meta.SyncState),
		meta.PendingChangesCount,
		lastSyncTime,
		meta.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Err(err).Str("func", "*syncMetadataRepository.Save").
			Str("lsn", string(meta.CurrentLSN)).
			Msg("error saving sync metadata")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
