// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// serverChangeRepository keeps the audit trail of received remote changes
// in the "server_changes" table. Records of one batch share a batch id and
// are updated together.
type serverChangeRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewServerChangeRepository(db *DB, logger *logger.Logger) ServerChangeRepository {
	logger.Debug().Msg("creating server change repository")
	return &serverChangeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *serverChangeRepository) Create(ctx context.Context, records ...models.ServerChangeRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(ctx context.Context, tx Executor) error {
		log := logger.FromContext(ctx)

		for _, rec := range records {
			data, err := encodeData(rec.Data)
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(ctx, createServerChange,
				rec.ID,
				rec.BatchID,
				rec.EntityType,
				rec.EntityID,
				string(rec.Operation),
				data,
				rec.Timestamp.UTC(),
				rec.ProcessedLocal,
				rec.ProcessedSync,
				rec.FromServer,
				rec.Error,
				rec.Attempts,
			)
			if err != nil {
				log.Err(err).Str("func", "*serverChangeRepository.Create").
					Str("batch_id", rec.BatchID).
					Str("table", rec.EntityType).
					Msg("error inserting server change record")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		return nil
	})
}

func (r *serverChangeRepository) MarkApplied(ctx context.Context, batchID string, attempts int) error {
	return r.markLocal(ctx, batchID, true, "", attempts)
}

func (r *serverChangeRepository) MarkFailed(ctx context.Context, batchID string, errText string, attempts int) error {
	return r.markLocal(ctx, batchID, false, errText, attempts)
}

func (r *serverChangeRepository) markLocal(ctx context.Context, batchID string, applied bool, errText string, attempts int) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, markServerChangesLocal, applied, attempts, errText, batchID); err != nil {
		log.Err(err).Str("func", "*serverChangeRepository.markLocal").
			Str("batch_id", batchID).
			Bool("applied", applied).
			Msg("error updating server change records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *serverChangeRepository) MarkAcknowledged(ctx context.Context, batchID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, markServerChangesAcknowledged, true, batchID); err != nil {
		log.Err(err).Str("func", "*serverChangeRepository.MarkAcknowledged").
			Str("batch_id", batchID).
			Msg("error acknowledging server change records")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *serverChangeRepository) ListByBatch(ctx context.Context, batchID string) ([]models.ServerChangeRecord, error) {
	query := r.db.StatementBuilder().
		Select(serverChangeColumns).
		From(serverChangesTable).
		Where(sq.Eq{"batch_id": batchID}).
		OrderBy("id")

	return r.list(ctx, query, "*serverChangeRepository.ListByBatch")
}

// ListFailed returns records that were not applied and carry an error,
// most recent first.
func (r *serverChangeRepository) ListFailed(ctx context.Context, limit int) ([]models.ServerChangeRecord, error) {
	query := r.db.StatementBuilder().
		Select(serverChangeColumns).
		From(serverChangesTable).
		Where(sq.And{
			sq.Eq{"processed_local": false},
			sq.NotEq{"error": ""},
		}).
		OrderBy("received_at DESC", "id")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return r.list(ctx, query, "*serverChangeRepository.ListFailed")
}

func (r *serverChangeRepository) list(ctx context.Context, query sq.SelectBuilder, fn string) ([]models.ServerChangeRecord, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.ServerChangeRecord
	for rows.Next() {
		var (
			rec       models.ServerChangeRecord
			operation string
			data      string
		)

		err := rows.Scan(
			&rec.ID,
			&rec.BatchID,
			&rec.EntityType,
			&rec.EntityID,
			&operation,
			&data,
			&rec.Timestamp,
			&rec.ProcessedLocal,
			&rec.ProcessedSync,
			&rec.FromServer,
			&rec.Error,
			&rec.Attempts,
		)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning server change record")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		rec.Operation = models.Operation(operation)
		rec.Timestamp = rec.Timestamp.UTC()
		if rec.Data, err = decodeData(data); err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
