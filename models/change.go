// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"time"
)

// Operation is the kind of mutation carried by a change.
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// IsValid reports whether op is insert, update or delete.
func (op Operation) IsValid() bool {
	return op == OperationInsert || op == OperationUpdate || op == OperationDelete
}

// SyncStatus is the server-confirmation state of a locally captured change.
type SyncStatus string

const (
	// SyncStatusPending changes are waiting to be sent or acknowledged.
	SyncStatusPending SyncStatus = "pending"
	// SyncStatusProcessed changes were confirmed by the server, or were
	// folded away locally and never needed to be sent.
	SyncStatusProcessed SyncStatus = "processed"
	// SyncStatusFailed changes were rejected by the server and are kept for
	// inspection or manual retry.
	SyncStatusFailed SyncStatus = "failed"
)

// DefaultEntityIDField is the data key holding the entity identifier.
const DefaultEntityIDField = "id"

// LocalChange is one captured local mutation not yet confirmed by the server.
//
// For updates Data may carry only the changed fields plus the entity id; for
// deletes it carries at least the entity id.
type LocalChange struct {
	ID        string         `json:"id"`
	Table     string         `json:"table"`
	Operation Operation      `json:"operation"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Status    SyncStatus     `json:"processedSync"`
	Attempts  int            `json:"attempts"`
	Error     string         `json:"error,omitempty"`
}

// EntityID returns the identifier stored under idField in the change data,
// or an empty string if there is none.
func (c LocalChange) EntityID(idField string) string {
	if c.Data == nil {
		return ""
	}
	v, ok := c.Data[idField]
	if !ok {
		return ""
	}
	return FormatEntityID(v)
}

// ToTableChange builds the wire form of the change.
func (c LocalChange) ToTableChange() TableChange {
	return TableChange{
		ID:        c.ID,
		Table:     c.Table,
		Operation: c.Operation,
		Data:      c.Data,
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// TableChange is the unit of change exchanged with the server.
type TableChange struct {
	ID        string         `json:"id,omitempty"`
	Table     string         `json:"table"`
	Operation Operation      `json:"operation"`
	Data      map[string]any `json:"data"`
	UpdatedAt string         `json:"updated_at,omitempty"`
	LSN       LSN            `json:"lsn,omitempty"`
}

// EntityID returns the identifier stored under idField in the change data.
func (c TableChange) EntityID(idField string) string {
	if c.Data == nil {
		return ""
	}
	v, ok := c.Data[idField]
	if !ok {
		return ""
	}
	return FormatEntityID(v)
}

// FormatEntityID renders an entity identifier decoded from JSON or passed by
// application code as a stable string key.
func FormatEntityID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(id), 'f', -1, 32)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case uint64:
		return strconv.FormatUint(id, 10)
	case fmt.Stringer:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}
