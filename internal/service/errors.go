package service

import (
	"errors"

	"github.com/MKhiriev/go-sync-engine/internal/validators"
)

var (
	ErrMissingEntityID   = validators.ErrMissingEntityID
	ErrTableNotSynced    = validators.ErrTableNotSynced
	ErrInvalidOperation  = validators.ErrInvalidOperation
	ErrInvalidIdentifier = validators.ErrInvalidIdentifier

	ErrBatchApplyFailed = errors.New("incoming batch could not be applied")

	ErrAuthentication = errors.New("authentication failed")
	ErrNoClientID     = errors.New("sync metadata has no client id")

	ErrNotStarted = errors.New("sync coordinator is not started")
)
