// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// control API handlers and the clients that talk to them.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgInvalidLimit is returned for a limit query parameter that is not a
	// non-negative integer.
	MsgInvalidLimit = "invalid limit"

	MsgStatusUnavailable = "error getting engine status"

	MsgListPendingFailed       = "error listing pending changes"
	MsgListFailedFailed        = "error listing failed changes"
	MsgRetryFailed             = "error retrying failed changes"
	MsgClearFailed             = "error clearing changes"
	MsgListServerChangesFailed = "error listing failed server changes"

	// MsgFlushFailed is returned when the queued changes could not be handed
	// to the connection.
	MsgFlushFailed = "error sending queued changes"
)
