package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrMissingEntityID:   http.StatusBadRequest,
	service.ErrTableNotSynced:    http.StatusBadRequest,
	service.ErrInvalidOperation:  http.StatusBadRequest,
	service.ErrInvalidIdentifier: http.StatusBadRequest,
	service.ErrAuthentication:    http.StatusUnauthorized,
	service.ErrNoClientID:        http.StatusConflict,
	service.ErrNotStarted:        http.StatusServiceUnavailable,
	service.ErrBatchApplyFailed:  http.StatusInternalServerError,

	store.ErrLocalChangeNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
