// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Token is a bearer credential used for the sync socket handshake.
//
// SignedString holds the compact serialized form of the JWT. ExpiresAt is
// the parsed "exp" claim; a zero ExpiresAt means the token does not expire.
type Token struct {
	SignedString string
	ExpiresAt    time.Time
}

// ValidAt reports whether the token is usable at now, keeping a safety
// margin of skew before its expiry.
func (t Token) ValidAt(now time.Time, skew time.Duration) bool {
	if t.SignedString == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return now.Add(skew).Before(t.ExpiresAt)
}

// String returns the compact JWS serialization of the token.
func (t Token) String() string {
	return t.SignedString
}
