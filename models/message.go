// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MessageType names a wire protocol message.
type MessageType string

// Client to server messages.
const (
	MessageInitReceived    MessageType = "clt_init_received"
	MessageInitProcessed   MessageType = "clt_init_processed"
	MessageCatchupReceived MessageType = "clt_catchup_received"
	MessageChangesReceived MessageType = "clt_changes_received"
	MessageSendChanges     MessageType = "clt_send_changes"
	MessageDisconnect      MessageType = "clt_disconnect"
)

// Server to client messages.
const (
	MessageServerInitStart        MessageType = "srv_init_start"
	MessageServerInitChanges      MessageType = "srv_init_changes"
	MessageServerInitComplete     MessageType = "srv_init_complete"
	MessageServerCatchupChanges   MessageType = "srv_catchup_changes"
	MessageServerCatchupCompleted MessageType = "srv_catchup_completed"
	MessageServerLiveStart        MessageType = "srv_live_start"
	MessageServerLiveChanges      MessageType = "srv_live_changes"
	MessageServerChangesReceived  MessageType = "srv_changes_received"
	MessageServerChangesApplied   MessageType = "srv_changes_applied"
	MessageServerError            MessageType = "srv_error"
	MessageServerStateChange      MessageType = "srv_state_change"
	MessageServerLSNUpdate        MessageType = "srv_lsn_update"
)

// Sequence positions a chunk inside an initial or catchup stream.
type Sequence struct {
	Table string `json:"table,omitempty"`
	Chunk int    `json:"chunk"`
}

// Message is the JSON envelope of every frame on the sync socket. Only the
// fields relevant to a given Type are set.
type Message struct {
	Type      MessageType `json:"type"`
	ClientID  string      `json:"clientId,omitempty"`
	MessageID string      `json:"messageId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	InReplyTo string      `json:"inReplyTo,omitempty"`

	Table    string    `json:"table,omitempty"`
	Chunk    int       `json:"chunk"`
	Sequence *Sequence `json:"sequence,omitempty"`

	LSN       LSN  `json:"lsn,omitempty"`
	LastLSN   LSN  `json:"lastLSN,omitempty"`
	ServerLSN LSN  `json:"serverLSN,omitempty"`
	FinalLSN  LSN  `json:"finalLSN,omitempty"`
	Resume    bool `json:"resume,omitempty"`

	Changes        []TableChange `json:"changes,omitempty"`
	ChangeIDs      []string      `json:"changeIds,omitempty"`
	AppliedChanges []string      `json:"appliedChanges,omitempty"`
	FailedChanges  []string      `json:"failedChanges,omitempty"`
	Success        *bool         `json:"success,omitempty"`
	Error          string        `json:"error,omitempty"`

	ErrorCode         any       `json:"errorCode,omitempty"`
	ErrorMessage      string    `json:"errorMessage,omitempty"`
	OriginalMessageID string    `json:"originalMessageId,omitempty"`
	State             SyncState `json:"state,omitempty"`
}

// Succeeded reports the outcome of a srv_changes_applied message. A missing
// success flag counts as success only when no error text is present.
func (m Message) Succeeded() bool {
	if m.Success != nil {
		return *m.Success
	}
	return m.Error == ""
}

// SequenceChunk returns the chunk index of an init/catchup batch, preferring
// the sequence block over the top-level field.
func (m Message) SequenceChunk() int {
	if m.Sequence != nil {
		return m.Sequence.Chunk
	}
	return m.Chunk
}

// SequenceTable returns the table of an init batch.
func (m Message) SequenceTable() string {
	if m.Sequence != nil && m.Sequence.Table != "" {
		return m.Sequence.Table
	}
	return m.Table
}
