package utils

import "github.com/google/uuid"

// NewID returns a version 7 UUID, falling back to a random one. Version 7
// ids sort by creation time, so queue rows sharing a timestamp keep capture
// order.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
