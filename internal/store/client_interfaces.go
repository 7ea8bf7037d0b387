package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SyncMetadataRepository persists the singleton [models.SyncMetadata] row.
type SyncMetadataRepository interface {
	// Get returns the stored metadata or [ErrSyncMetadataNotFound].
	Get(ctx context.Context) (models.SyncMetadata, error)
	// Save inserts the row on first use and overwrites it afterwards.
	Save(ctx context.Context, meta models.SyncMetadata) error
}

// LocalChangeRepository is the durable queue of captured local mutations.
// Listing methods return changes ordered by capture time.
type LocalChangeRepository interface {
	Create(ctx context.Context, change models.LocalChange) error
	Get(ctx context.Context, id string) (models.LocalChange, error)
	// ListByStatus returns at most limit changes; limit <= 0 means all.
	ListByStatus(ctx context.Context, status models.SyncStatus, limit int) ([]models.LocalChange, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.LocalChange, error)
	CountByStatus(ctx context.Context, status models.SyncStatus) (int, error)
	// MarkStatus moves the given changes to status and records errText.
	MarkStatus(ctx context.Context, ids []string, status models.SyncStatus, errText string) (int64, error)
	IncrementAttempts(ctx context.Context, ids []string) error
	DeleteByStatus(ctx context.Context, statuses ...models.SyncStatus) (int64, error)
	// Rewrite stores the folded form of the queue in a single transaction:
	// updated records are overwritten, removed ids are deleted and dropped
	// ids are marked processed.
	Rewrite(ctx context.Context, updated []models.LocalChange, removedIDs, droppedIDs []string) error
}

// ServerChangeRepository is the audit trail of remote changes.
type ServerChangeRepository interface {
	Create(ctx context.Context, records ...models.ServerChangeRecord) error
	MarkApplied(ctx context.Context, batchID string, attempts int) error
	MarkFailed(ctx context.Context, batchID string, errText string, attempts int) error
	MarkAcknowledged(ctx context.Context, batchID string) error
	ListByBatch(ctx context.Context, batchID string) ([]models.ServerChangeRecord, error)
	ListFailed(ctx context.Context, limit int) ([]models.ServerChangeRecord, error)
}

// Executor runs statements either on the pool or inside a transaction.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// LocalStore is the query/transaction surface the incoming change applier
// writes application tables through.
type LocalStore interface {
	Executor
	Transaction(ctx context.Context, fn func(ctx context.Context, tx Executor) error) error
	StatementBuilder() sq.StatementBuilderType
	Classify(err error) ErrorClassification
}
