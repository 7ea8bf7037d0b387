// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncMetadata is the singleton snapshot that lets the engine resume after a
// restart.
type SyncMetadata struct {
	ClientID            string     `json:"clientId"`
	CurrentLSN          LSN        `json:"currentLsn"`
	SyncState           SyncState  `json:"syncState"`
	PendingChangesCount int        `json:"pendingChangesCount"`
	LastSyncTime        *time.Time `json:"lastSyncTime,omitempty"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// SyncMetadataPatch is a partial update of [SyncMetadata]; nil fields are
// left untouched.
type SyncMetadataPatch struct {
	CurrentLSN          *LSN
	SyncState           *SyncState
	PendingChangesCount *int
	LastSyncTime        *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p SyncMetadataPatch) IsEmpty() bool {
	return p.CurrentLSN == nil && p.SyncState == nil && p.PendingChangesCount == nil && p.LastSyncTime == nil
}

// Apply copies the non-nil fields of p into m.
func (m *SyncMetadata) Apply(p SyncMetadataPatch) {
	if p.CurrentLSN != nil {
		m.CurrentLSN = *p.CurrentLSN
	}
	if p.SyncState != nil {
		m.SyncState = *p.SyncState
	}
	if p.PendingChangesCount != nil {
		m.PendingChangesCount = *p.PendingChangesCount
	}
	if p.LastSyncTime != nil {
		t := *p.LastSyncTime
		m.LastSyncTime = &t
	}
}
