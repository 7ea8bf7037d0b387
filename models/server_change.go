// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ServerChangeRecord is the audit entry of a remote change received from the
// server and applied (or not) to the local store.
type ServerChangeRecord struct {
	ID             string         `json:"id"`
	BatchID        string         `json:"batchId"`
	EntityType     string         `json:"entityType"`
	EntityID       string         `json:"entityId"`
	Operation      Operation      `json:"operation"`
	Data           map[string]any `json:"data,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	ProcessedLocal bool           `json:"processedLocal"`
	ProcessedSync  bool           `json:"processedSync"`
	FromServer     bool           `json:"fromServer"`
	Error          string         `json:"error,omitempty"`
	Attempts       int            `json:"attempts"`
}
