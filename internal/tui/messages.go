package tui

import "github.com/MKhiriev/go-sync-engine/models"

// snapshotMsg carries one poll of the control API. Only polled snapshots
// schedule the next tick so refreshes after a command do not start a
// second polling loop.
type snapshotMsg struct {
	status models.EngineStatus
	failed []models.LocalChange
	poll   bool
	err    error
}

type tickMsg struct{}

type actionDoneMsg struct {
	action string
	err    error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
