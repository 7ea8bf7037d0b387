// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package connection

import "errors"

var (
	ErrNotConnected   = errors.New("connection is not open")
	ErrAuthentication = errors.New("authentication failed")
	ErrEncodeMessage  = errors.New("error encoding message")
	ErrWriteMessage   = errors.New("error writing message")
	ErrInvalidURL     = errors.New("invalid sync url")
	ErrClosed         = errors.New("connection manager is closed")
)
