// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
)

func humanizeControlAPIError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, adapter.ErrServiceUnavailable) {
		return "sync engine is not started yet"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "engine is not running or the control API is unreachable"
	}

	return err.Error()
}
