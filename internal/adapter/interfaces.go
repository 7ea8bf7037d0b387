// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound HTTP collaborators of the sync
// engine: the auth token source used for the socket handshake, the network
// probe that detects the host coming back online and the client of the
// engine's own control API.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync-engine/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// TokenProvider supplies the bearer credential attached to the sync socket
// handshake.
type TokenProvider interface {
	// GetToken returns a usable token, acquiring a new one when the cached
	// token is missing or about to expire. An error means the engine must not
	// connect.
	GetToken(ctx context.Context) (models.Token, error)

	// Invalidate drops the cached token so the next GetToken acquires a new
	// one.
	Invalidate()
}

// NetworkProbe reports whether the sync backend is reachable from the host.
type NetworkProbe interface {
	Reachable(ctx context.Context) bool
}

// ControlAPI drives a running engine through its local control API.
type ControlAPI interface {
	Status(ctx context.Context) (models.EngineStatus, error)
	FailedChanges(ctx context.Context) ([]models.LocalChange, error)
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Flush(ctx context.Context) error
	// RetryFailed moves every failed change back to the queue and returns
	// how many were moved.
	RetryFailed(ctx context.Context) (int64, error)
	Resync(ctx context.Context) error
}
