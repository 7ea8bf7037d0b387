// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoServersAreCreated is returned by NewServer when the control API
	// has no address or no handler.
	errNoServersAreCreated = errors.New("no servers are created")

	errNotListening = errors.New("http server is not listening")
)
