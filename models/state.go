// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncState is a state of the client sync protocol.
type SyncState string

const (
	// SyncStateDisconnected means there is no live transport.
	SyncStateDisconnected SyncState = "disconnected"
	// SyncStateConnecting means the transport is being opened and the server
	// has not yet declared which phase it starts with.
	SyncStateConnecting SyncState = "connecting"
	// SyncStateInitial is the full-dataset bootstrap.
	SyncStateInitial SyncState = "initial"
	// SyncStateCatchup is the replay of changes since the last known LSN.
	SyncStateCatchup SyncState = "catchup"
	// SyncStateLive is steady-state bidirectional sync.
	SyncStateLive SyncState = "live"
)

// IsValid reports whether s is one of the known protocol states.
func (s SyncState) IsValid() bool {
	switch s {
	case SyncStateDisconnected, SyncStateConnecting, SyncStateInitial, SyncStateCatchup, SyncStateLive:
		return true
	default:
		return false
	}
}

func (s SyncState) String() string {
	return string(s)
}
