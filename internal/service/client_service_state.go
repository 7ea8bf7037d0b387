// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

type statePersister struct {
	repo     store.SyncMetadataRepository
	debounce time.Duration
	now      func() time.Time
	newID    func() string

	mu      sync.Mutex
	current models.SyncMetadata
	dirty   bool
	closed  bool
	timer   *time.Timer

	logger *logger.Logger
}

// NewStatePersister creates a [StatePersister] coalescing the saves made
// within debounce into one write. A non-positive debounce writes every save
// immediately.
func NewStatePersister(repo store.SyncMetadataRepository, debounce time.Duration, logger *logger.Logger) StatePersister {
	return &statePersister{
		repo:     repo,
		debounce: debounce,
		now:      time.Now,
		newID:    utils.NewID,
		logger:   logger.WithComponent("state"),
	}
}

func (p *statePersister) Load(ctx context.Context) (models.SyncMetadata, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	meta, err := p.repo.Get(ctx)
	if err == nil {
		if meta.CurrentLSN == "" {
			meta.CurrentLSN = models.OriginLSN
		}
		p.current = meta
		p.dirty = false
		p.logger.Info().
			Str("client_id", meta.ClientID).
			Str("lsn", meta.CurrentLSN.String()).
			Msg("sync metadata loaded")
		return meta, nil
	}
	if !errors.Is(err, store.ErrSyncMetadataNotFound) {
		return models.SyncMetadata{}, fmt.Errorf("load sync metadata: %w", err)
	}

	meta = p.freshLocked()
	if err = p.repo.Save(ctx, meta); err != nil {
		return models.SyncMetadata{}, fmt.Errorf("create sync metadata: %w", err)
	}
	p.current = meta
	p.dirty = false

	p.logger.Info().Str("client_id", meta.ClientID).Msg("new sync client identity created")
	return meta, nil
}

func (p *statePersister) Current() models.SyncMetadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *statePersister) Save(ctx context.Context, patch models.SyncMetadataPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.current.Apply(patch)
	p.current.UpdatedAt = p.now().UTC()
	p.dirty = true

	if p.debounce <= 0 || p.closed {
		return p.writeLocked(ctx)
	}
	if p.timer == nil {
		p.timer = time.AfterFunc(p.debounce, p.flushOnTimer)
	}
	return nil
}

func (p *statePersister) flushOnTimer() {
	if err := p.Flush(context.Background()); err != nil {
		p.logger.Err(err).Str("func", "*statePersister.flushOnTimer").Msg("debounced sync metadata write failed")
	}
}

func (p *statePersister) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	return p.writeLocked(ctx)
}

func (p *statePersister) Reset(ctx context.Context) (models.SyncMetadata, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	previous := p.current.ClientID
	p.current = p.freshLocked()
	p.dirty = true
	if err := p.writeLocked(ctx); err != nil {
		return models.SyncMetadata{}, err
	}

	p.logger.Info().
		Str("previous_client_id", previous).
		Str("client_id", p.current.ClientID).
		Msg("sync metadata reset")
	return p.current, nil
}

func (p *statePersister) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	return p.Flush(ctx)
}

// writeLocked upserts the snapshot if it has unsaved changes. On failure the
// snapshot stays dirty so the next flush retries it.
func (p *statePersister) writeLocked(ctx context.Context) error {
	if !p.dirty {
		return nil
	}

	if err := p.repo.Save(ctx, p.current); err != nil {
		return fmt.Errorf("save sync metadata: %w", err)
	}
	p.dirty = false

	p.logger.Debug().
		Str("lsn", p.current.CurrentLSN.String()).
		Str("state", p.current.SyncState.String()).
		Int("pending", p.current.PendingChangesCount).
		Msg("sync metadata saved")
	return nil
}

func (p *statePersister) freshLocked() models.SyncMetadata {
	return models.SyncMetadata{
		ClientID:   p.newID(),
		CurrentLSN: models.OriginLSN,
		SyncState:  models.SyncStateDisconnected,
		UpdatedAt:  p.now().UTC(),
	}
}
