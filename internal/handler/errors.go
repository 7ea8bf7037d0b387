// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the control API
// address is empty. Callers that run without a control API skip handler
// construction entirely.
var errNoHandlersAreCreated = errors.New("no handlers are created")
