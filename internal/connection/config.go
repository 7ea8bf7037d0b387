// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connection

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	defaultHandshakeTimeout   = 10 * time.Second
	defaultReconnectBaseDelay = time.Second
	defaultMaxAttempts        = 10
	defaultPingInterval       = 30 * time.Second
	defaultWriteTimeout       = 10 * time.Second

	reconnectMultiplier = 1.5
)

// Params are attached to every dial so the server can decide between an
// initial load and a catchup.
type Params struct {
	ClientID string
	LSN      models.LSN
	Token    string
}

// HandshakeFunc produces the handshake parameters for a dial. It is called
// before every attempt so reconnects carry the current LSN and a fresh
// credential. A returned error is treated as an authentication failure.
type HandshakeFunc func(ctx context.Context) (Params, error)

// Config holds the transport tunables.
type Config struct {
	URL                string
	HandshakeTimeout   time.Duration
	ReconnectBaseDelay time.Duration
	// MaxReconnectAttempts caps consecutive failed reconnects before the
	// manager gives up.
	MaxReconnectAttempts int
	PingInterval         time.Duration
	WriteTimeout         time.Duration
}

func (c Config) withDefaults() Config {
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}
	if c.ReconnectBaseDelay <= 0 {
		c.ReconnectBaseDelay = defaultReconnectBaseDelay
	}
	if c.MaxReconnectAttempts <= 0 {
		c.MaxReconnectAttempts = defaultMaxAttempts
	}
	if c.PingInterval <= 0 {
		c.PingInterval = defaultPingInterval
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	return c
}
