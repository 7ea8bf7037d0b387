// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConnectionStatus is the transport-level status of the sync socket.
type ConnectionStatus string

const (
	ConnectionDisconnected ConnectionStatus = "disconnected"
	ConnectionConnecting   ConnectionStatus = "connecting"
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionReconnecting ConnectionStatus = "reconnecting"
	// ConnectionFailed means reconnection gave up, either after the maximum
	// number of attempts or on an authentication failure.
	ConnectionFailed ConnectionStatus = "failed"
)
