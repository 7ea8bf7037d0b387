// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/events"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/internal/validators"
	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	defaultMaxApplyRetries = 3
	defaultApplyRetryDelay = 100 * time.Millisecond
)

type changeApplier struct {
	store      store.LocalStore
	audit      store.ServerChangeRepository
	bus        *events.Bus
	idField    string
	validator  validators.Validator
	maxRetries int
	retryDelay time.Duration

	now   func() time.Time
	newID func() string

	// mu serializes batches.
	mu sync.Mutex

	logger *logger.Logger
}

// NewChangeApplier creates a [ChangeApplier] writing through localStore and
// recording every batch in the audit repository.
func NewChangeApplier(
	localStore store.LocalStore,
	audit store.ServerChangeRepository,
	bus *events.Bus,
	cfg config.ClientSync,
	logger *logger.Logger,
) ChangeApplier {
	a := &changeApplier{
		store:      localStore,
		audit:      audit,
		bus:        bus,
		idField:    cfg.EntityIDField,
		maxRetries: cfg.MaxApplyRetries,
		retryDelay: cfg.ApplyRetryDelay,
		now:        time.Now,
		newID:      utils.NewID,
		logger:     logger.WithComponent("applier"),
	}

	if a.idField == "" {
		a.idField = models.DefaultEntityIDField
	}
	a.validator = validators.NewChangeValidator(cfg.Tables, a.idField)
	if a.maxRetries < 0 {
		a.maxRetries = defaultMaxApplyRetries
	}
	if a.retryDelay <= 0 {
		a.retryDelay = defaultApplyRetryDelay
	}

	return a
}

func (a *changeApplier) ApplyChanges(ctx context.Context, changes []models.TableChange) (models.ApplyResult, error) {
	result, applied, err := a.applyBatch(ctx, changes)

	if err != nil {
		a.bus.Publish(ctx, events.TopicSyncError, events.ErrorEvent{
			Code:    "apply_failed",
			Message: err.Error(),
			Err:     err,
		})
		return result, err
	}

	for _, change := range applied {
		a.bus.Publish(ctx, events.TopicChangeApplied, events.ChangeAppliedEvent{
			Table:     change.Table,
			Operation: change.Operation,
			EntityID:  change.EntityID(a.idField),
			Data:      change.Data,
		})
	}

	return result, nil
}

func (a *changeApplier) applyBatch(ctx context.Context, changes []models.TableChange) (models.ApplyResult, []models.TableChange, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := models.ApplyResult{BatchID: a.newID()}
	log := a.logger.With().Str("batch_id", result.BatchID).Logger()

	accepted, records := a.screen(ctx, changes, result.BatchID)
	result.Skipped = len(changes) - len(accepted)
	if len(accepted) == 0 {
		log.Debug().Int("skipped", result.Skipped).Msg("nothing to apply in batch")
		return result, nil, nil
	}

	if err := a.audit.Create(ctx, records...); err != nil {
		return result, nil, fmt.Errorf("record incoming batch: %w", err)
	}

	backoff := retry.WithMaxRetries(uint64(a.maxRetries), retry.NewConstant(a.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result.Attempts++

		err := a.store.Transaction(ctx, func(ctx context.Context, tx store.Executor) error {
			for _, change := range accepted {
				if err := a.applyOne(ctx, tx, change); err != nil {
					return fmt.Errorf("%s %s %s: %w", change.Operation, change.Table, change.EntityID(a.idField), err)
				}
			}
			return nil
		})
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", result.Attempts).
				Str("class", a.store.Classify(err).String()).
				Msg("batch apply failed, rolled back")
			return retry.RetryableError(err)
		}
		return nil
	})

	if err != nil {
		if markErr := a.audit.MarkFailed(ctx, result.BatchID, err.Error(), result.Attempts); markErr != nil {
			log.Err(markErr).Msg("error recording failed batch")
		}
		log.Error().Err(err).Int("attempts", result.Attempts).Msg("batch permanently failed")
		return result, nil, fmt.Errorf("%w: %w", ErrBatchApplyFailed, err)
	}

	if err = a.audit.MarkApplied(ctx, result.BatchID, result.Attempts); err != nil {
		return result, nil, fmt.Errorf("record applied batch: %w", err)
	}

	result.Applied = len(accepted)
	log.Info().
		Int("applied", result.Applied).
		Int("skipped", result.Skipped).
		Int("attempts", result.Attempts).
		Msg("batch applied")

	return result, accepted, nil
}

// screen drops changes that cannot be applied and builds their audit
// records.
func (a *changeApplier) screen(ctx context.Context, changes []models.TableChange, batchID string) ([]models.TableChange, []models.ServerChangeRecord) {
	accepted := make([]models.TableChange, 0, len(changes))
	records := make([]models.ServerChangeRecord, 0, len(changes))
	now := a.now().UTC()

	for _, change := range changes {
		entityID := change.EntityID(a.idField)

		err := a.validator.Validate(ctx, change,
			validators.FieldOperation, validators.FieldData, validators.FieldEntityID, validators.FieldTable)
		if err != nil {
			a.logger.Debug().
				Err(err).
				Str("table", change.Table).
				Str("operation", string(change.Operation)).
				Str("entity_id", entityID).
				Msg(skipReason(err))
			continue
		}

		accepted = append(accepted, change)
		records = append(records, models.ServerChangeRecord{
			ID:         a.newID(),
			BatchID:    batchID,
			EntityType: change.Table,
			EntityID:   entityID,
			Operation:  change.Operation,
			Data:       change.Data,
			Timestamp:  now,
			FromServer: true,
		})
	}

	return accepted, records
}

func (a *changeApplier) applyOne(ctx context.Context, tx store.Executor, change models.TableChange) error {
	table, err := validators.QuoteIdentifier(change.Table)
	if err != nil {
		return err
	}
	idColumn, err := validators.QuoteIdentifier(a.idField)
	if err != nil {
		return err
	}
	byID := sq.Eq{idColumn: sqlValue(change.Data[a.idField])}
	sb := a.store.StatementBuilder()

	if change.Operation == models.OperationDelete {
		return exec(ctx, tx, sb.Delete(table).Where(byID))
	}

	exists, err := rowExists(ctx, tx, sb.Select("1").From(table).Where(byID).Limit(1))
	if err != nil {
		return err
	}

	if !exists {
		columns, values, err := columnValues(change.Data, "")
		if err != nil {
			return err
		}
		return exec(ctx, tx, sb.Insert(table).Columns(columns...).Values(values...))
	}

	// re-delivered insert of a row we already have
	if change.Operation == models.OperationInsert {
		return nil
	}

	columns, values, err := columnValues(change.Data, a.idField)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		return nil
	}
	set := make(map[string]any, len(columns))
	for i, c := range columns {
		set[c] = values[i]
	}
	return exec(ctx, tx, sb.Update(table).SetMap(set).Where(byID))
}

func (a *changeApplier) MarkAcknowledged(ctx context.Context, batchID string) error {
	if batchID == "" {
		return nil
	}
	if err := a.audit.MarkAcknowledged(ctx, batchID); err != nil {
		return fmt.Errorf("mark batch acknowledged: %w", err)
	}
	return nil
}

func (a *changeApplier) GetFailedServerChanges(ctx context.Context, limit int) ([]models.ServerChangeRecord, error) {
	records, err := a.audit.ListFailed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list failed server changes: %w", err)
	}
	return records, nil
}

// columnValues returns the quoted column names of data, sorted, with their
// SQL values. The skip column is left out.
func columnValues(data map[string]any, skip string) ([]string, []any, error) {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k != skip {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	columns := make([]string, 0, len(keys))
	values := make([]any, 0, len(keys))
	for _, k := range keys {
		column, err := validators.QuoteIdentifier(k)
		if err != nil {
			return nil, nil, err
		}
		columns = append(columns, column)
		values = append(values, sqlValue(data[k]))
	}
	return columns, values, nil
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, validators.ErrInvalidOperation):
		return "skipping change with unknown operation"
	case errors.Is(err, validators.ErrEmptyData):
		return "skipping change without data"
	case errors.Is(err, validators.ErrMissingEntityID):
		return "skipping change without entity id"
	default:
		return "skipping change for a table that is not synced"
	}
}

// sqlValue converts a JSON-decoded value to a driver value. Objects and
// arrays are stored as JSON text and integral numbers as integers.
func sqlValue(v any) any {
	switch val := v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return int64(val)
		}
		return val
	default:
		return v
	}
}

func exec(ctx context.Context, tx store.Executor, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func rowExists(ctx context.Context, tx store.Executor, b sq.SelectBuilder) (bool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}

	var one int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
