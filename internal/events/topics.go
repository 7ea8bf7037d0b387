// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import "github.com/MKhiriev/go-sync-engine/models"

// Topic names an event stream on the bus.
type Topic string

// Topics observed by the host application.
const (
	TopicStateChange    Topic = "stateChange"
	TopicLSNUpdate      Topic = "lsnUpdate"
	TopicPendingChanges Topic = "pendingChangesUpdate"
	TopicChangeApplied  Topic = "change:applied"
	TopicSyncError      Topic = "sync:error"
)

// Topics emitted by the connection manager.
const (
	TopicConnectionStatus  Topic = "connection:status"
	TopicConnectionOpen    Topic = "connection:open"
	TopicConnectionMessage Topic = "connection:message"
	TopicConnectionClose   Topic = "connection:close"
	TopicConnectionGiveUp  Topic = "connection:give_up"
)

// StateChangeEvent is the payload of TopicStateChange.
type StateChangeEvent struct {
	From models.SyncState
	To   models.SyncState
}

// LSNUpdateEvent is the payload of TopicLSNUpdate.
type LSNUpdateEvent struct {
	Previous models.LSN
	Current  models.LSN
}

// PendingChangesEvent is the payload of TopicPendingChanges.
type PendingChangesEvent struct {
	Count int
}

// ChangeAppliedEvent is published for every server change written to the
// local store.
type ChangeAppliedEvent struct {
	Table     string
	Operation models.Operation
	EntityID  string
	Data      map[string]any
}

// ErrorEvent is the payload of TopicSyncError.
type ErrorEvent struct {
	Code      string
	Message   string
	MessageID string
	Err       error
}

// ConnectionStatusEvent is the payload of TopicConnectionStatus.
type ConnectionStatusEvent struct {
	Status  models.ConnectionStatus
	Attempt int
	Err     error
}

// ConnectionOpenEvent is the payload of TopicConnectionOpen. It carries the
// handshake parameters the socket was opened with.
type ConnectionOpenEvent struct {
	ClientID string
	LSN      models.LSN
}

// ConnectionCloseEvent is the payload of TopicConnectionClose.
type ConnectionCloseEvent struct {
	Code int
	// Clean is true when the socket was closed by Disconnect.
	Clean bool
	Err   error
}

// ConnectionGiveUpEvent is the payload of TopicConnectionGiveUp.
type ConnectionGiveUpEvent struct {
	Attempts int
	// AuthFailed is set when reconnection stopped because the server
	// rejected the credentials.
	AuthFailed bool
	Err        error
}
