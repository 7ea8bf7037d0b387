// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Credentials are the login parameters sent to the auth endpoint to obtain
// a sync token.
type Credentials struct {
	// Login is the account name.
	Login string `json:"login"`

	// Password is the account secret. It is never logged or persisted.
	Password string `json:"password"`

	// ClientID identifies the device requesting the token, so the issuer can
	// bind the token to a single sync client.
	ClientID string `json:"client_id,omitempty"`
}
