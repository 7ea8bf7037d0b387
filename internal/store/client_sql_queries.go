// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	localChangesTable  = "local_changes"
	serverChangesTable = "server_changes"

	localChangeColumns  = "id, table_name, operation, data, created_at, updated_at, status, attempts, error"
	serverChangeColumns = "id, batch_id, entity_type, entity_id, operation, data, received_at, processed_local, processed_sync, from_server, error, attempts"
)

const (
	getSyncMetadata = `
		SELECT
			client_id,
			current_lsn,
			sync_state,
			pending_changes_count,
			last_sync_time,
			updated_at
		FROM sync_metadata
		WHERE id = 1;`

	saveSyncMetadata = `
		INSERT INTO sync_metadata (
			id,
			client_id,
			current_lsn,
			sync_state,
			pending_changes_count,
			last_sync_time,
			updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			client_id             = excluded.client_id,
			current_lsn           = excluded.current_lsn,
			sync_state            = excluded.sync_state,
			pending_changes_count = excluded.pending_changes_count,
			last_sync_time        = excluded.last_sync_time,
			updated_at            = excluded.updated_at;`
)

const (
	createLocalChange = `
		INSERT INTO local_changes (
			id,
			table_name,
			operation,
			data,
			created_at,
			updated_at,
			status,
			attempts,
			error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	getLocalChange = `
		SELECT
			id,
			table_name,
			operation,
			data,
			created_at,
			updated_at,
			status,
			attempts,
			error
		FROM local_changes
		WHERE id = $1;`

	countLocalChangesByStatus = `
		SELECT COUNT(*) FROM local_changes WHERE status = $1;`

	rewriteLocalChange = `
		UPDATE local_changes SET
			operation  = $1,
			data       = $2,
			updated_at = $3,
			status     = $4,
			attempts   = $5,
			error      = $6
		WHERE id = $7;`
)

const (
	createServerChange = `
		INSERT INTO server_changes (
			id,
			batch_id,
			entity_type,
			entity_id,
			operation,
			data,
			received_at,
			processed_local,
			processed_sync,
			from_server,
			error,
			attempts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`

	markServerChangesLocal = `
		UPDATE server_changes SET
			processed_local = $1,
			attempts        = $2,
			error           = $3
		WHERE batch_id = $4;`

	markServerChangesAcknowledged = `
		UPDATE server_changes SET processed_sync = $1 WHERE batch_id = $2;`
)
