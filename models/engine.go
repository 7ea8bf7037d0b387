package models

import "time"

// EngineStatus is a point-in-time view of a running sync engine.
type EngineStatus struct {
	State          SyncState        `json:"state"`
	ClientID       string           `json:"clientId"`
	LSN            LSN              `json:"lsn"`
	Connection     ConnectionStatus `json:"connection"`
	PendingChanges int              `json:"pendingChanges"`
	InFlight       int              `json:"inFlight"`
	LastSyncTime   *time.Time       `json:"lastSyncTime,omitempty"`
}

// InFlightChange is a local change sent to the server and not yet
// acknowledged.
type InFlightChange struct {
	ChangeID string    `json:"changeId"`
	BatchID  string    `json:"batchId"`
	SentAt   time.Time `json:"sentAt"`
}

// ApplyResult summarizes one incoming batch written to the local store.
type ApplyResult struct {
	BatchID  string `json:"batchId"`
	Applied  int    `json:"applied"`
	Skipped  int    `json:"skipped"`
	Attempts int    `json:"attempts"`
}
