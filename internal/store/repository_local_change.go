// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// localChangeRepository is the SQL implementation of [LocalChangeRepository]
// over the "local_changes" table. Change data is stored as JSON text.
type localChangeRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewLocalChangeRepository constructs a [LocalChangeRepository] over db.
func NewLocalChangeRepository(db *DB, logger *logger.Logger) LocalChangeRepository {
	logger.Debug().Msg("creating local change repository")
	return &localChangeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *localChangeRepository) Create(ctx context.Context, change models.LocalChange) error {
	log := logger.FromContext(ctx)

	data, err := encodeData(change.Data)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, createLocalChange,
		change.ID,
		change.Table,
		string(change.Operation),
		data,
		change.CreatedAt.UTC(),
		change.UpdatedAt.UTC(),
		string(change.Status),
		change.Attempts,
		change.Error,
	)
	if err != nil {
		log.Err(err).Str("func", "*localChangeRepository.Create").
			Str("change_id", change.ID).
			Str("table", change.Table).
			Msg("error inserting local change")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrLocalChangeNotSaved
	}

	return nil
}

func (r *localChangeRepository) Get(ctx context.Context, id string) (models.LocalChange, error) {
	log := logger.FromContext(ctx)

	change, err := scanLocalChange(r.db.QueryRowContext(ctx, getLocalChange, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalChange{}, ErrLocalChangeNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*localChangeRepository.Get").Str("change_id", id).Msg("error scanning local change")
		return models.LocalChange{}, err
	}

	return change, nil
}

func (r *localChangeRepository) ListByStatus(ctx context.Context, status models.SyncStatus, limit int) ([]models.LocalChange, error) {
	query := r.db.StatementBuilder().
		Select(localChangeColumns).
		From(localChangesTable).
		Where(sq.Eq{"status": string(status)}).
		OrderBy("created_at", "id")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return r.list(ctx, query, "*localChangeRepository.ListByStatus")
}

func (r *localChangeRepository) ListByIDs(ctx context.Context, ids []string) ([]models.LocalChange, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := r.db.StatementBuilder().
		Select(localChangeColumns).
		From(localChangesTable).
		Where(sq.Eq{"id": ids}).
		OrderBy("created_at", "id")

	return r.list(ctx, query, "*localChangeRepository.ListByIDs")
}

func (r *localChangeRepository) list(ctx context.Context, query sq.SelectBuilder, fn string) ([]models.LocalChange, error) {
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

	var changes []models.LocalChange
	for rows.Next() {
		change, err := scanLocalChange(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("error scanning local change")
			return nil, err
		}
		changes = append(changes, change)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return changes, nil
}

func (r *localChangeRepository) CountByStatus(ctx context.Context, status models.SyncStatus) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := r.db.QueryRowContext(ctx, countLocalChangesByStatus, string(status)).Scan(&count); err != nil {
		log.Err(err).Str("func", "*localChangeRepository.CountByStatus").Msg("error counting local changes")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *localChangeRepository) MarkStatus(ctx context.Context, ids []string, status models.SyncStatus, errText string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := r.db.StatementBuilder().
		Update(localChangesTable).
		Set("status", string(status)).
		Set("error", errText).
		Where(sq.Eq{"id": ids})

	return r.exec(ctx, query, "*localChangeRepository.MarkStatus")
}

func (r *localChangeRepository) IncrementAttempts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := r.db.StatementBuilder().
		Update(localChangesTable).
		Set("attempts", sq.Expr("attempts + 1")).
		Where(sq.Eq{"id": ids})

	_, err := r.exec(ctx, query, "*localChangeRepository.IncrementAttempts")
	return err
}

func (r *localChangeRepository) DeleteByStatus(ctx context.Context, statuses ...models.SyncStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	query := r.db.StatementBuilder().
		Delete(localChangesTable).
		Where(sq.Eq{"status": values})

	return r.exec(ctx, query, "*localChangeRepository.DeleteByStatus")
}

func (r *localChangeRepository) exec(ctx context.Context, query sq.Sqlizer, fn string) (int64, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error executing statement")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func (r *localChangeRepository) Rewrite(ctx context.Context, updated []models.LocalChange, removedIDs, droppedIDs []string) error {
	if len(updated) == 0 && len(removedIDs) == 0 && len(droppedIDs) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(ctx context.Context, tx Executor) error {
		log := logger.FromContext(ctx)

		for _, change := range updated {
			data, err := encodeData(change.Data)
			if err != nil {
				return err
			}

			_, err = tx.ExecContext(ctx, rewriteLocalChange,
				string(change.Operation),
				data,
				change.UpdatedAt.UTC(),
				string(change.Status),
				change.Attempts,
				change.Error,
				change.ID,
			)
			if err != nil {
				log.Err(err).Str("func", "*localChangeRepository.Rewrite").
					Str("change_id", change.ID).
					Msg("error updating local change")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		if len(removedIDs) > 0 {
			query := r.db.StatementBuilder().
				Delete(localChangesTable).
				Where(sq.Eq{"id": removedIDs})
			if err := execTx(ctx, tx, query); err != nil {
				log.Err(err).Str("func", "*localChangeRepository.Rewrite").Msg("error deleting superseded changes")
				return err
			}
		}

		if len(droppedIDs) > 0 {
			query := r.db.StatementBuilder().
				Update(localChangesTable).
				Set("status", string(models.SyncStatusProcessed)).
				Set("error", "").
				Where(sq.Eq{"id": droppedIDs})
			if err := execTx(ctx, tx, query); err != nil {
				log.Err(err).Str("func", "*localChangeRepository.Rewrite").Msg("error settling cancelled changes")
				return err
			}
		}

		return nil
	})
}

func execTx(ctx context.Context, tx Executor, query sq.Sqlizer) error {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocalChange(row rowScanner) (models.LocalChange, error) {
	var (
		change    models.LocalChange
		operation string
		status    string
		data      string
	)

	err := row.Scan(
		&change.ID,
		&change.Table,
		&operation,
		&data,
		&change.CreatedAt,
		&change.UpdatedAt,
		&status,
		&change.Attempts,
		&change.Error,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LocalChange{}, err
	}
	if err != nil {
		return models.LocalChange{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	change.Operation = models.Operation(operation)
	change.Status = models.SyncStatus(status)
	change.CreatedAt = change.CreatedAt.UTC()
	change.UpdatedAt = change.UpdatedAt.UTC()

	change.Data, err = decodeData(data)
	if err != nil {
		return models.LocalChange{}, err
	}

	return change, nil
}

func encodeData(data map[string]any) (string, error) {
	if data == nil {
		return "{}", nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidChangeData, err)
	}

	return string(b), nil
}

func decodeData(raw string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidChangeData, err)
	}

	return data, nil
}
