// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// LSN is a log sequence number reported by the server. It is kept in its
// string form because providers encode it differently: Postgres-style
// "X/Y" hexadecimal pairs or plain decimal counters are both accepted.
type LSN string

// OriginLSN is the position of a client that has never synced.
const OriginLSN LSN = "0/0"

// ParseLSN converts an LSN into a comparable 64-bit position.
//
// "X/Y" values are read as two hexadecimal 32-bit halves; values without a
// slash are read as unsigned decimal integers. An empty LSN is position 0.
func ParseLSN(l LSN) (uint64, error) {
	s := strings.TrimSpace(string(l))
	if s == "" {
		return 0, nil
	}

	hi, lo, found := strings.Cut(s, "/")
	if !found {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid lsn %q: %w", s, err)
		}
		return v, nil
	}

	h, err := strconv.ParseUint(hi, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid lsn %q: %w", s, err)
	}
	o, err := strconv.ParseUint(lo, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid lsn %q: %w", s, err)
	}

	return h<<32 | o, nil
}

// Compare returns -1, 0 or +1 depending on whether l is before, equal to or
// after other. LSNs that cannot be parsed fall back to string comparison.
func (l LSN) Compare(other LSN) int {
	a, errA := ParseLSN(l)
	b, errB := ParseLSN(other)
	if errA != nil || errB != nil {
		return strings.Compare(string(l), string(other))
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// After reports whether l is strictly ahead of other.
func (l LSN) After(other LSN) bool {
	return l.Compare(other) > 0
}

// IsZero reports whether l points at the origin.
func (l LSN) IsZero() bool {
	v, err := ParseLSN(l)
	return err == nil && v == 0
}

func (l LSN) String() string {
	return string(l)
}
