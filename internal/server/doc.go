// Package server runs the local control API of the sync engine.
//
// It owns the HTTP listener lifecycle: binding, serving and graceful
// shutdown when the run context is cancelled.
package server
